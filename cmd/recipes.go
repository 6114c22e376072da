package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-board.com/task-board/internal/recipes"
)

var (
	recipeStyle string
	recipeWidth int
	recipeWatch bool
)

var recipesCmd = &cobra.Command{
	Use:   "recipes [term]",
	Short: "Search TheMealDB and render the results",
	Long: "Searches recipes by name. Without a term the default query is used. " +
		"With --watch each line read from stdin is a new search term; searches are " +
		"debounced and only the latest term's results are shown.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newRecipeClient(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if recipeWatch {
			return watchRecipes(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), client, cfg.RecipeDebounce())
		}

		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		found, err := client.Search(ctx, term)
		if err != nil {
			return err
		}
		return renderRecipes(cmd.OutOrStdout(), found)
	},
}

// watchRecipes runs every line of in through a debounced searcher and
// renders results as they arrive. Once in is exhausted it waits for the
// result of the last term, or for ctx to end.
func watchRecipes(ctx context.Context, in io.Reader, out io.Writer, client recipes.RecipeSearcher, delay time.Duration) error {
	results := make(chan recipes.Result, 1)
	searcher := recipes.NewSearcher(client, delay, func(r recipes.Result) {
		// Only the newest result matters; drop one the printer has not taken.
		select {
		case <-results:
		default:
		}
		results <- r
	})
	defer searcher.Close()

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
		if err := scanner.Err(); err != nil {
			log.WithError(err).Warn("reading search terms")
		}
	}()

	var (
		latest  string
		pending bool
	)
	for lines != nil || pending {
		select {
		case <-ctx.Done():
			return nil
		case term, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			latest, pending = term, true
			searcher.Submit(term)
		case r := <-results:
			if r.Term != latest {
				continue
			}
			pending = false
			if r.Err != nil {
				fmt.Fprintf(out, "search %q failed: %v\n", r.Term, r.Err)
				continue
			}
			fmt.Fprintf(out, "# results for %q\n", r.Term)
			if err := renderRecipes(out, r.Recipes); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderRecipes(out io.Writer, found []recipes.Recipe) error {
	rendered, err := recipes.Render(found, recipeStyle, recipeWidth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func init() {
	recipesCmd.Flags().StringVar(&recipeStyle, "style", "", "glamour style: dark, light or notty (default: detect)")
	recipesCmd.Flags().IntVar(&recipeWidth, "width", 80, "word wrap width")
	recipesCmd.Flags().BoolVarP(&recipeWatch, "watch", "w", false, "read search terms from stdin")
	rootCmd.AddCommand(recipesCmd)
}
