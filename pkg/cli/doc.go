/*
Package cli provides helpers shared by the urbanvision commands.

Errors:

ConfigError and CommandError carry the failing field or command, and ExitCode
maps them to the process exit status:

	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}

Output Formatting:

Command results are written as text or JSON. Values implementing Table are
rendered as aligned columns in text mode:

	formatter, err := cli.NewFormatter("json")
	if err != nil {
		return err
	}
	return formatter.FormatTo(os.Stdout, records)

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.NotifyContext(context.Background())
	defer stop()
*/
package cli
