package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
	"github.com/viant/clawguard/service/approval"
)

type previewOptions struct {
	kind      string
	value     string
	threat    verdict.Threat
	severity  string
	timeoutMs int
}

func newPreviewCmd() *cobra.Command {
	options := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the approval message sent for a warning",
		RunE: func(cmd *cobra.Command, args []string) error {
			var threat *verdict.Threat
			if options.threat.Name != "" || options.threat.ID != "" {
				threat = &options.threat
				threat.Severity = verdict.Severity(options.severity)
			}
			timeout := time.Duration(options.timeoutMs) * time.Millisecond
			fmt.Fprintln(cmd.OutOrStdout(), approval.Format(options.value, action.ContentKind(options.kind), threat, timeout))
			return nil
		},
	}
	cmd.Flags().StringVar(&options.kind, "kind", string(action.ContentCommand), "content kind: command, url, skill or message")
	cmd.Flags().StringVar(&options.value, "value", "", "flagged content")
	cmd.Flags().StringVar(&options.threat.Name, "threat-name", "", "threat name")
	cmd.Flags().StringVar(&options.threat.ID, "threat-id", "", "threat identifier")
	cmd.Flags().StringVar(&options.severity, "severity", string(verdict.SeverityMedium), "threat severity")
	cmd.Flags().StringVar(&options.threat.TeachingPrompt, "teaching", "", "explanation shown to the approver")
	cmd.Flags().IntVar(&options.timeoutMs, "timeout", 60000, "approval timeout in ms")
	return cmd
}
