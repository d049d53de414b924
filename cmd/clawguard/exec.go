package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/clawguard/service/exec"
)

type execOptions struct {
	host         string
	credentials  string
	workdir      string
	timeoutMs    int
	abortOnError bool
}

func newExecCmd(root *rootOptions) *cobra.Command {
	options := &execOptions{}
	cmd := &cobra.Command{
		Use:   "exec -- command [command...]",
		Short: "Run commands once the gate allowed every one of them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv, err := root.service(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close(ctx) }()

			runner := exec.New(srv, exec.WithLogger(srv.Logger()))
			defer func() { _ = runner.Close() }()
			abortOnError := options.abortOnError
			input := &exec.Input{
				Host:         &exec.Host{URL: options.host, Credentials: options.credentials},
				Workdir:      options.workdir,
				Commands:     args,
				TimeoutMs:    options.timeoutMs,
				AbortOnError: &abortOnError,
			}
			output := &exec.Output{}
			execErr := runner.Execute(ctx, input, output)
			data, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return execErr
		},
	}
	cmd.Flags().StringVar(&options.host, "host", exec.DefaultHostURL, "host URL, e.g. ssh://build-01:22")
	cmd.Flags().StringVar(&options.credentials, "credentials", "", "scy credentials resource for ssh hosts")
	cmd.Flags().StringVarP(&options.workdir, "workdir", "w", "", "working directory")
	cmd.Flags().IntVar(&options.timeoutMs, "timeoutMs", 0, "per command timeout in ms")
	cmd.Flags().BoolVar(&options.abortOnError, "abortOnError", true, "stop at the first failing command")
	return cmd
}
