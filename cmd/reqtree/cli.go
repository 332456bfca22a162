package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/n2code/reqtree"
	"github.com/n2code/reqtree/cmd/reqtree/flags"
	"github.com/n2code/reqtree/internal/logger"
	"github.com/n2code/reqtree/internal/output"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

type CliRequest struct {
	verbose     bool
	quiet       bool
	plain       bool
	root        string
	metricsFile string
	action      string
	actionFlags map[string]interface{}
	actionArgs  []string
}

const logLevelVariable = `REQTREE_LOG_LEVEL`

func parseFlags(args []string, out io.Writer, errOut io.Writer) (request *CliRequest, exitCode int) {
	general := flag.NewFlagSet("", flag.ExitOnError)
	general.SetOutput(errOut)
	general.Usage = func() {
		general.Output().Write([]byte(`
Usage:
   reqtree [-v|-q] [-p] [-C DIRECTORY] [-metrics FILE] [-h] <ACTION> [FLAG] [TARGET]

 ACTIONs:  tree  outline  item  find  check  serve

`))
		general.PrintDefaults()
		general.Output().Write([]byte(`
 FLAG(s) and TARGET(s) are action-specific.
 You can read the help on any action:
    reqtree <ACTION> -h

 Diagnostic logging goes to standard error, its level is read from ` + logLevelVariable + `
 (trace, debug, info, warn, error, off). Default: warn

`))
	}

	request = &CliRequest{}
	var generalHelpRequested bool
	general.BoolVar(&request.verbose, flags.Verbose, false, "Output more details (verbose mode)")
	general.BoolVar(&request.quiet, flags.Quiet, false, "Output as little as possible, i.e. only requested information (quiet mode)")
	general.BoolVar(&request.plain, flags.Plain, false, "Plain output without colors or other escape sequences")
	general.BoolVar(&generalHelpRequested, flags.Help, false, "Display general usage help")
	general.StringVar(&request.root, flags.Root, ".", "Root `DIRECTORY` of the requirements tree")
	general.StringVar(&request.metricsFile, flags.MetricsFile, "", "Write Prometheus metrics of the run to `FILE` in text exposition format")

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: reqtree -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	general.Parse(args) //exits on error

	if generalHelpRequested {
		general.SetOutput(out)
		general.Usage()
		exitCode = 0
		request = nil
		return
	}
	if general.NArg() == 0 {
		err = errors.New("No arguments given!")
		return
	}
	if request.verbose && request.quiet {
		err = errors.New("Quiet mode and verbose mode are mutually exclusive!")
		return
	}

	request.action = general.Arg(0)
	request.actionFlags = make(map[string]interface{})
	request.actionArgs = general.Args()[1:]
	actionDescriptionIndent := "  "
	actionDescription := actionDescriptionIndent
	flagSpecification := ""
	argumentSpecification := ""

	actionParams := flag.NewFlagSet(request.action+" action", flag.ExitOnError)
	actionParams.SetOutput(errOut)
	actionParams.Usage = func() {
		fmt.Fprintf(actionParams.Output(), `
Usage of %s action:
   reqtree [MODE] %s%s%s

%s
`, request.action, request.action, flagSpecification, argumentSpecification, actionDescription)
		if len(flagSpecification) > 0 {
			fmt.Fprint(actionParams.Output(), `
 Available flags:
`)
		}
		actionParams.PrintDefaults()
		fmt.Fprintf(actionParams.Output(), `
 Global MODE documentation can be shown by:
    reqtree -h

`)
	}

ActionParamCheck:
	switch request.action {
	case "tree":
		flagSpecification = " [-summary]"
		actionDescription += "Display the document hierarchy starting at the root document."
		request.actionFlags[flags.TreeWithSummary] = actionParams.Bool(flags.TreeWithSummary, false, "append the number of documents and items")
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() > 0 {
			err = errors.New("command accepts no arguments, only flags")
			break ActionParamCheck
		}
	case "outline":
		argumentSpecification = " PREFIX"
		actionDescription += "Display all items of the document with the given PREFIX nested by\n" +
			actionDescriptionIndent + "their level."
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() != 1 {
			err = errors.New("bad number of arguments, exactly one expected")
			break ActionParamCheck
		}
	case "item":
		argumentSpecification = " UID..."
		actionDescription += "Display the full content of the item(s) with the given UID(s)."
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() < 1 {
			err = errors.New("no targets given")
			break ActionParamCheck
		}
	case "find":
		flagSpecification = " [-n MAX]"
		argumentSpecification = " QUERY..."
		actionDescription += "Search headers and texts of all items. All arguments are joined to\n" +
			actionDescriptionIndent + "a single query, best matches are listed first."
		request.actionFlags[flags.FindMaxResults] = actionParams.Int(flags.FindMaxResults, 10, "list at most MAX results (capped at 100)")
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() < 1 {
			err = errors.New("no query given")
			break ActionParamCheck
		}
		if *(request.actionFlags[flags.FindMaxResults].(*int)) < 1 {
			err = errors.New(`flag "-n" requires a positive number`)
			break ActionParamCheck
		}
	case "check":
		actionDescription += "Load the whole tree and report the first problem found, if any."
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() > 0 {
			err = errors.New("too many arguments")
			break ActionParamCheck
		}
	case "serve":
		actionDescription += "Serve the tree read-only as MCP tools on standard input and output\n" +
			actionDescriptionIndent + "until the client disconnects or the process is interrupted."
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() > 0 {
			err = errors.New("too many arguments")
			break ActionParamCheck
		}
	default:
		err = fmt.Errorf(`unknown action "%s"`, request.action)
	}
	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (rq *CliRequest) execute(out io.Writer, errOut io.Writer, fancy bool) (execErr error) {
	config := reqtree.CreateConfig{Output: out, FancyTerminalFeatures: fancy && !rq.plain}
	if rq.verbose {
		config.Verbosity = reqtree.VerboseMode
	}
	if rq.quiet {
		config.Verbosity = reqtree.QuietMode
	}

	log := logger.New(logger.Config{
		Level:      envOr(logLevelVariable, "warn"),
		Pretty:     config.FancyTerminalFeatures,
		Output:     errOut,
		WithCaller: rq.verbose,
	})
	config.Logger = &log

	if rq.metricsFile != "" {
		registry := prometheus.NewRegistry()
		config.Metrics = registry
		defer func() {
			if err := prometheus.WriteToTextfile(rq.metricsFile, registry); err != nil {
				execErr = errors.Join(execErr, fmt.Errorf("writing metrics failed: %w", err))
			}
		}()
	}

	api, err := reqtree.Open(rq.root, config)
	if err != nil {
		return err
	}
	defer api.Close()

	switch rq.action {
	case "tree":
		api.PrintTree()
		if *(rq.actionFlags[flags.TreeWithSummary].(*bool)) {
			fmt.Fprintln(out)
			api.PrintSummary()
		}
	case "outline":
		if err := api.PrintOutline(rq.actionArgs[0]); err != nil {
			return err
		}
	case "item":
		for i, uid := range rq.actionArgs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := api.PrintItem(uid); err != nil {
				return err
			}
		}
	case "find":
		query := strings.Join(rq.actionArgs, " ")
		results, err := api.Find(query, *(rq.actionFlags[flags.FindMaxResults].(*int)))
		if err != nil {
			return err
		}
		if len(results) == 0 && !rq.quiet {
			return fmt.Errorf("no matches found for: %s", query)
		}
		for _, result := range results {
			if rq.quiet {
				fmt.Fprintln(out, result.UID)
				continue
			}
			fmt.Fprintf(out, "%s %s %s\n", result.UID, result.Level, output.Shorten(result.Title, 60))
			if rq.verbose {
				fmt.Fprintf(out, "  @%s (score %.3f)\n", result.Path, result.Score)
			}
		}
		if !rq.quiet {
			fmt.Fprintf(out, "\n%d %s found\n", len(results), output.Plural(len(results), "match", "matches"))
		}
	case "check":
		if !rq.quiet {
			fmt.Fprintln(out, "requirements tree is consistent")
		}
		api.PrintSummary()
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := api.Serve(ctx, &mcp.StdioTransport{}); err != nil {
			return err
		}
	default:
		panic("bad action")
	}
	return nil
}

func main() {
	rq, rc := parseFlags(os.Args[1:], os.Stdout, os.Stderr)
	if rc != 0 || rq == nil {
		os.Exit(rc)
	}
	fancy := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
	if err := rq.execute(os.Stdout, os.Stderr, fancy); err != nil {
		if fancy && !rq.plain {
			fmt.Fprintln(os.Stderr, output.TerminalFormatAsError(err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		if subject, found := reqtree.ErrorSubject(err); found && rq.verbose {
			fmt.Fprintf(os.Stderr, "(affected: %s)\n", subject)
		}
		os.Exit(1)
	}
	os.Exit(0)
}
