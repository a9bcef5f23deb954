package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftboard/driftboard/pkg/scene"
	"github.com/driftboard/driftboard/pkg/store"
)

// sceneCommand creates the scene management command, operating on the
// configured scene store (file directory or MongoDB).
func (c *CLI) sceneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage stored scenes",
	}

	cmd.AddCommand(c.sceneListCommand())
	cmd.AddCommand(c.scenePushCommand())
	cmd.AddCommand(c.scenePullCommand())
	cmd.AddCommand(c.sceneDeleteCommand())

	return cmd
}

// withStore loads the config, opens the store, runs fn, and closes the
// store again.
func (c *CLI) withStore(cmd *cobra.Command, fn func(st store.Store) error) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	return fn(st)
}

// sceneListCommand creates the "scene list" subcommand.
func (c *CLI) sceneListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				infos, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					printInfo("No stored scenes")
					return nil
				}
				for _, info := range infos {
					printKeyValue(info.Name, info.ID)
				}
				return nil
			})
		},
	}
}

// scenePushCommand creates the "scene push" subcommand.
func (c *CLI) scenePushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push [scene.json]",
		Short: "Store a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				sc, err := scene.ReadSceneFile(args[0])
				if err != nil {
					return err
				}
				if err := st.Put(cmd.Context(), sc); err != nil {
					return err
				}
				printSuccess("Stored %s", sc.Name)
				printDetail("id: %s", sc.ID)
				return nil
			})
		},
	}
}

// scenePullCommand creates the "scene pull" subcommand.
func (c *CLI) scenePullCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull [id]",
		Short: "Fetch a stored scene into a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				sc, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = fmt.Sprintf("%s.json", sc.ID)
				}
				if err := scene.WriteSceneFile(sc, path); err != nil {
					return err
				}
				printSuccess("Fetched %s", sc.Name)
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.json)")
	return cmd
}

// sceneDeleteCommand creates the "scene delete" subcommand.
func (c *CLI) sceneDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}
