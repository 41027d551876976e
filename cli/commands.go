package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	LogLevel  string `help:"Diagnostics log level (${enum})." enum:"trace,debug,info,warn,error,disabled" default:"warn"`
}

type Commands struct {
	Globals

	Run    RunCmd    `cmd:"" default:"withargs" help:"Replay a transaction file and print the final balances."`
	Check  CheckCmd  `cmd:"" help:"Parse and dry-run a transaction file, reporting every refused transaction."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging transaction files."`
	Format FormatCmd `cmd:"" help:"Format a transaction file into aligned columns."`
}
