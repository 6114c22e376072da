package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

const dueDateLayout = "2006-01-02"

var (
	taskDescription string
	taskStatus      string
	taskPriority    string
	taskDue         string
	taskAssignee    string
	taskTitle       string
	taskClearDue    bool
	outputJSON      bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks in the stored board state",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := parseDue(taskDue)
		if err != nil {
			return err
		}

		return withApp(func(ctx context.Context, a *app) error {
			task, err := a.tasks.CreateTask(ctx, model.TaskInput{
				Title:       args[0],
				Description: taskDescription,
				Status:      constants.TaskStatus(taskStatus),
				Priority:    constants.TaskPriority(taskPriority),
				DueDate:     due,
				Assignee:    taskAssignee,
			})
			if err != nil {
				return err
			}
			return printTasks(cmd.OutOrStdout(), []model.Task{*task})
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible tasks using the stored filters and sort",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if taskStatus == "" {
				return printTasks(cmd.OutOrStdout(), a.tasks.ListTasks(ctx))
			}
			tasks, err := a.tasks.ListTasksByStatus(ctx, constants.TaskStatus(taskStatus))
			if err != nil {
				return err
			}
			return printTasks(cmd.OutOrStdout(), tasks)
		})
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a task to another column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			task, err := a.tasks.MoveTask(ctx, args[0], constants.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			if task == nil {
				log.Warnf("no task with id %s", args[0])
				return nil
			}
			return printTasks(cmd.OutOrStdout(), []model.Task{*task})
		})
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task; only flags given are applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}

		return withApp(func(ctx context.Context, a *app) error {
			task, err := a.tasks.UpdateTask(ctx, args[0], patch)
			if err != nil {
				return err
			}
			if task == nil {
				log.Warnf("no task with id %s", args[0])
				return nil
			}
			return printTasks(cmd.OutOrStdout(), []model.Task{*task})
		})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			return a.tasks.DeleteTask(ctx, args[0])
		})
	},
}

var taskBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the visible tasks grouped by column",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			columns := a.tasks.Board(ctx)
			out := cmd.OutOrStdout()
			if outputJSON {
				return writeJSON(out, columns)
			}
			for _, col := range columns {
				fmt.Fprintf(out, "== %s (%d) ==\n", col.Status, col.Count)
				if err := printTasks(out, col.Tasks); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			return nil
		})
	},
}

// withApp opens storage, runs fn and waits for the resulting snapshot to be
// written before returning.
func withApp(fn func(ctx context.Context, a *app) error) error {
	cfg := loadConfig()
	ctx := context.Background()

	a := newApp(ctx, cfg)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout())
	defer cancel()
	defer a.shutdown(shutdownCtx)

	if err := fn(ctx, a); err != nil {
		return err
	}
	if err := a.tasks.Flush(shutdownCtx); err != nil {
		return fmt.Errorf("save board state: %w", err)
	}
	return nil
}

func patchFromFlags(cmd *cobra.Command) (model.TaskPatch, error) {
	var patch model.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		patch.Title = &taskTitle
	}
	if flags.Changed("description") {
		patch.Description = &taskDescription
	}
	if flags.Changed("status") {
		status := constants.TaskStatus(taskStatus)
		patch.Status = &status
	}
	if flags.Changed("priority") {
		priority := constants.TaskPriority(taskPriority)
		patch.Priority = &priority
	}
	if flags.Changed("assignee") {
		patch.Assignee = &taskAssignee
	}

	switch {
	case taskClearDue && flags.Changed("due"):
		return patch, errors.New("--due and --clear-due are mutually exclusive")
	case taskClearDue:
		patch.DueDate = model.Null[time.Time]()
	case flags.Changed("due"):
		due, err := parseDue(taskDue)
		if err != nil {
			return patch, err
		}
		if due == nil {
			patch.DueDate = model.Null[time.Time]()
		} else {
			patch.DueDate = model.Some(*due)
		}
	}

	return patch, nil
}

// parseDue accepts a calendar date or an RFC 3339 timestamp. Empty means no
// due date.
func parseDue(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD or RFC 3339", raw)
	}
	return &t, nil
}

func printTasks(out io.Writer, tasks []model.Task) error {
	if outputJSON {
		return writeJSON(out, tasks)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNEE")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format(dueDateLayout)
		}
		assignee := t.Assignee
		if assignee == "" {
			assignee = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, due, assignee)
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func init() {
	taskCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print JSON instead of a table")

	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "task description")
	taskAddCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "To Do, In Progress or Done (default To Do)")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Low, Medium or High (default Medium)")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "due date, YYYY-MM-DD or RFC 3339")
	taskAddCmd.Flags().StringVarP(&taskAssignee, "assignee", "a", "", "who the task is assigned to")

	taskListCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "only show one column")

	taskUpdateCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "new title")
	taskUpdateCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "new description")
	taskUpdateCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "new status")
	taskUpdateCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "new priority")
	taskUpdateCmd.Flags().StringVar(&taskDue, "due", "", "new due date, YYYY-MM-DD or RFC 3339")
	taskUpdateCmd.Flags().BoolVar(&taskClearDue, "clear-due", false, "remove the due date")
	taskUpdateCmd.Flags().StringVarP(&taskAssignee, "assignee", "a", "", "new assignee")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskMoveCmd, taskUpdateCmd, taskDeleteCmd, taskBoardCmd)
	rootCmd.AddCommand(taskCmd)
}
