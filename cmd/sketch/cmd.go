package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lshigami/sketchquiz/internal/canvas"
	"github.com/lshigami/sketchquiz/internal/client"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  questions [-server URL]                                        - list questions")
	fmt.Fprintln(cli.out, "  submit -script FILE [-question ID] [-user NAME] [-png FILE]    - draw a stroke script and submit it")
	fmt.Fprintln(cli.out, "  results [-user NAME]                                           - list graded results")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	questionsCmd := flag.NewFlagSet("questions", flag.ContinueOnError)
	questionsServer := questionsCmd.String("server", "http://localhost:3000", "Game server base URL")

	submitCmd := flag.NewFlagSet("submit", flag.ContinueOnError)
	submitServer := submitCmd.String("server", "http://localhost:3000", "Game server base URL")
	submitScript := submitCmd.String("script", "", "Stroke script JSON file")
	submitQuestion := submitCmd.String("question", "", "Question id; a random question is used when empty")
	submitUser := submitCmd.String("user", "Guest", "Player name")
	submitPNG := submitCmd.String("png", "", "Also write the rendered drawing to this file")
	submitTimeout := submitCmd.Duration("timeout", client.DefaultTimeout, "Request timeout")

	resultsCmd := flag.NewFlagSet("results", flag.ContinueOnError)
	resultsServer := resultsCmd.String("server", "http://localhost:3000", "Game server base URL")
	resultsUser := resultsCmd.String("user", "", "Only this player's results")

	ctx := context.Background()

	switch args[1] {
	case "questions":
		if err := questionsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listQuestions(ctx, client.New(*questionsServer, 10*time.Second))
	case "submit":
		if err := submitCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *submitScript == "" {
			submitCmd.Usage()
			return errHelp
		}
		c := client.New(*submitServer, *submitTimeout)
		return cli.submit(ctx, c, *submitScript, *submitQuestion, *submitUser, *submitPNG)
	case "results":
		if err := resultsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listResults(ctx, client.New(*resultsServer, 10*time.Second), *resultsUser)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listQuestions(ctx context.Context, c *client.Client) error {
	questions, err := c.FetchQuestions(ctx)
	if err != nil {
		return err
	}
	for _, q := range questions {
		fmt.Fprintf(cli.out, "%s\t%s\t%s\n", q.ID, q.Category, q.Question)
	}
	return nil
}

func (cli *commandLine) listResults(ctx context.Context, c *client.Client, username string) error {
	results, err := c.FetchResults(ctx, username)
	if err != nil {
		return err
	}
	for _, r := range results {
		verdict := "incorrect"
		if r.Correct {
			verdict = "correct"
		}
		fmt.Fprintf(cli.out, "%s\t%s\t%s\t%s\t%s\n", r.CreatedAt.Format(time.RFC3339), r.Username, r.Question, r.Caption, verdict)
	}
	return nil
}

func (cli *commandLine) submit(ctx context.Context, c *client.Client, scriptPath, questionID, username, pngPath string) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer f.Close()

	script, err := canvas.ReadScript(f)
	if err != nil {
		return err
	}
	session := canvas.NewSession(script.Width, script.Height)
	if err := script.Replay(session); err != nil {
		return err
	}

	if pngPath != "" {
		raw, err := session.EncodePNG(canvas.DefaultQuality)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pngPath, raw, 0o644); err != nil {
			return err
		}
	}

	notify := client.NotifierFunc(func(kind client.NoticeKind, message string) {
		fmt.Fprintf(cli.out, "[%s] %s\n", kind, message)
	})

	if questionID != "" {
		resp, err := c.Submit(ctx, session, questionID, username)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, resp.Message)
		return nil
	}

	g := client.NewGame(c, session, username, notify, client.WithAdvanceDelay(0))
	q, err := g.NextQuestion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Question: %s\n", q.Question)
	resp, err := g.Submit(ctx)
	if err != nil && resp == nil {
		return err
	}
	fmt.Fprintln(cli.out, resp.Message)
	return nil
}
