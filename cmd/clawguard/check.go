package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/clawguard/model/action"
)

// errBlocked makes the process exit non-zero for a blocked request.
var errBlocked = errors.New("blocked")

type checkOptions struct {
	tool    string
	params  map[string]string
	request string
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	options := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a tool call and print the gate verdict",
		Long: `Evaluate a tool call and print the gate verdict as JSON.

The request is given either with --tool and --param flags or as a JSON
document {"tool": ..., "parameters": {...}} read from --request (use - for stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := options.build(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			srv, err := root.service(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close(ctx) }()

			gate := srv.Evaluate(ctx, request, nil)
			data, err := json.Marshal(gate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			if !gate.IsAllowed() {
				return fmt.Errorf("%w: %s", errBlocked, gate.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&options.tool, "tool", "t", "", "tool name: exec, web_fetch or browser")
	cmd.Flags().StringToStringVarP(&options.params, "param", "p", nil, "tool parameter key=value")
	cmd.Flags().StringVarP(&options.request, "request", "r", "", "JSON request file, - for stdin")
	return cmd
}

func (o *checkOptions) build(stdin io.Reader) (*action.Request, error) {
	if o.request == "" {
		if o.tool == "" {
			return nil, errors.New("either --tool or --request is required")
		}
		request := &action.Request{Tool: o.tool, Parameters: map[string]interface{}{}}
		for k, v := range o.params {
			request.Parameters[k] = v
		}
		return request, nil
	}
	var data []byte
	var err error
	if o.request == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(o.request)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	request := &action.Request{}
	if err = json.Unmarshal(data, request); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return request, nil
}
