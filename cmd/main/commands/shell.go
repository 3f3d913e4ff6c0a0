package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"autolist/lister/internal/category"
	"autolist/lister/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Starts an interactive session that keeps the browser and category path between actions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := app.Service.Warmup(ctx); err != nil {
			return err
		}

		sh := &shell{
			actions:    app.Service,
			categories: app.Session.Categories(),
			record:     app.Session.Record,
			out:        cmd.OutOrStdout(),
		}
		return sh.run(ctx, cmd.InOrStdin())
	},
}

type actions interface {
	Scrape(ctx context.Context, url string) (*domain.ProductRecord, error)
	LoadCategories(ctx context.Context) ([]domain.Category, error)
	SelectCategory(ctx context.Context, level int, id string) ([]domain.Category, error)
	Publish(ctx context.Context) (*domain.PublishResult, error)
}

type shell struct {
	actions    actions
	categories *category.Resolver
	record     func() *domain.ProductRecord
	out        io.Writer
}

const shellHelp = `Commands:
  scrape <url>          scrape a product page
  show                  print the current product
  roots                 reload the root categories
  select <level> <id>   choose a category at a level, 0 is the root level
  path                  print the selected path and the next choices
  publish               relay the primary image and list the current product
  help                  print this help
  quit                  leave the shell`

// run reads one command per line until quit, EOF or cancellation.
// A failed command is reported and the shell keeps going.
func (s *shell) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(s.out, "Type help for a list of commands.")
	for {
		fmt.Fprint(s.out, "autolist> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			log.Info("🛑 Interrupted, closing session")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return nil
			}
			if quit := s.exec(ctx, line); quit {
				return nil
			}
		}
	}
}

func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "scrape":
		err = s.scrape(ctx, args)
	case "show":
		if record := s.record(); record != nil {
			renderRecord(s.out, record)
		} else {
			fmt.Fprintln(s.out, "Nothing scraped yet")
		}
	case "roots":
		var roots []domain.Category
		if roots, err = s.actions.LoadCategories(ctx); err == nil {
			renderCategories(s.out, "Root categories", roots)
		}
	case "select":
		err = s.selectCategory(ctx, args)
	case "path":
		s.path()
	case "publish":
		var result *domain.PublishResult
		if result, err = s.actions.Publish(ctx); err == nil {
			renderResult(s.out, result)
		}
	default:
		fmt.Fprintf(s.out, "Unknown command %q, type help\n", cmd)
	}

	if err != nil {
		fmt.Fprintln(s.out, "Error:", err)
	}
	return false
}

func (s *shell) scrape(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: scrape <url>")
	}
	record, err := s.actions.Scrape(ctx, args[0])
	if err != nil {
		return err
	}
	renderRecord(s.out, record)
	return nil
}

func (s *shell) selectCategory(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: select <level> <id>")
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("level must be a number: %q", args[0])
	}

	children, err := s.actions.SelectCategory(ctx, level, args[1])
	if err != nil {
		return err
	}

	renderPath(s.out, s.categories.Selected())
	renderCategories(s.out, fmt.Sprintf("Level %d", level+1), children)
	return nil
}

func (s *shell) path() {
	renderPath(s.out, s.categories.Selected())
	if depth := s.categories.Depth(); depth > 0 {
		renderCategories(s.out, fmt.Sprintf("Level %d", depth-1), s.categories.Options(depth-1))
	}
}
