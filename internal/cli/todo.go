package cli

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func newTodoCmd() *cobra.Command {
	todoCmd := &cobra.Command{
		Use:   "todo",
		Short: "Todo commands",
	}

	todoCmd.AddCommand(newTodoAddCmd())
	todoCmd.AddCommand(newTodoListCmd())
	todoCmd.AddCommand(newTodoGetCmd())
	todoCmd.AddCommand(newTodoEditCmd())
	todoCmd.AddCommand(newTodoDoneCmd())
	todoCmd.AddCommand(newTodoReopenCmd())
	todoCmd.AddCommand(newTodoRmCmd())

	return todoCmd
}

func newTodoAddCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{
				"title":   args[0],
				"content": content,
			}

			var todo Todo
			if err := client.Do(http.MethodPost, "/api/v1/todos", body, &todo); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(todo)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "Todo content")

	return cmd
}

func newTodoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var list TodoList
			if err := client.Do(http.MethodGet, "/api/v1/todos", nil, &list); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(list)
			return nil
		},
	}
}

func newTodoGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			id, err := parseTodoID(args[0])
			if err != nil {
				out.PrintError(err)
				return err
			}

			var todo Todo
			if err := client.Do(http.MethodGet, todoPath(id), nil, &todo); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(todo)
			return nil
		},
	}
}

func newTodoEditCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a todo's title and content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			id, err := parseTodoID(args[0])
			if err != nil {
				out.PrintError(err)
				return err
			}

			body := map[string]string{
				"title":   title,
				"content": content,
			}

			var todo Todo
			if err := client.Do(http.MethodPatch, todoPath(id), body, &todo); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(todo)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title (required)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTodoDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(args[0], true)
		},
	}
}

func newTodoReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Mark a todo as not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompleted(args[0], false)
		},
	}
}

func newTodoRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			id, err := parseTodoID(args[0])
			if err != nil {
				out.PrintError(err)
				return err
			}

			if err := client.Do(http.MethodDelete, todoPath(id), nil, nil); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage(fmt.Sprintf("Deleted todo #%d", id))
			return nil
		},
	}
}

func setCompleted(rawID string, completed bool) error {
	out := NewOutput(cfg.Output)

	id, err := parseTodoID(rawID)
	if err != nil {
		out.PrintError(err)
		return err
	}

	body := map[string]bool{"completed": completed}

	var todo Todo
	if err := client.Do(http.MethodPatch, todoPath(id)+"/completed", body, &todo); err != nil {
		out.PrintError(err)
		return err
	}

	out.Print(todo)
	return nil
}

func parseTodoID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}

func todoPath(id int64) string {
	return fmt.Sprintf("/api/v1/todos/%d", id)
}
