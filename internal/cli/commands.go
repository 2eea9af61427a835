package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"fileref/internal/config"
	"fileref/internal/fileinfo"
)

var errUnavailable = errors.New("value unavailable")

func newRelpathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "relpath TARGET BASE",
		Short: "Print the path leading from BASE to TARGET",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := a.parseRefs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), refs[0].PathRelativeTo(refs[1]))
			return nil
		},
	}
}

func newBasedInCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "based-in PATH BASE",
		Short: "Report whether BASE is PATH or one of its ancestors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := a.parseRefs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), refs[0].IsBasedIn(refs[1]))
			return nil
		},
	}
}

func newComponentsCmd(a *app) *cobra.Command {
	var rootFirst bool
	cmd := &cobra.Command{
		Use:   "components PATH",
		Short: "List PATH and each of its ancestors up to the volume root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.parseRef(args[0])
			if err != nil {
				return err
			}
			comps := ref.ComponentURLs()
			if rootFirst {
				comps = lo.Reverse(comps)
			}
			printRefs(cmd, comps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&rootFirst, "root-first", false, "List the volume root first")
	return cmd
}

func newAppendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "append BASE PATH...",
		Short: "Append each PATH to BASE",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.parseRef(args[0])
			if err != nil {
				return err
			}
			printRefs(cmd, base.AppendPaths(args[1:]))
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "info PATH...",
		Short: "Show the resource properties of each PATH",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			refs, err := a.parseRefs(args)
			if err != nil {
				return err
			}
			rows := lo.Map(refs, func(ref fileinfo.Reference, _ int) infoRow {
				info, ok := a.resolver.Describe(ref)
				return infoRow{Ref: ref, Info: info, OK: ok}
			})
			return renderInfo(cmd.OutOrStdout(), rows, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, csv, markdown)")
	return cmd
}

func newPropertyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "property PATH KEY",
		Short: "Print one resource property of PATH",
		Long: "Print one resource property of PATH. KEY is one of: " +
			strings.Join(lo.Map(fileinfo.Properties(), func(p fileinfo.Property, _ int) string {
				return p.String()
			}), ", ") + ".",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.parseRef(args[0])
			if err != nil {
				return err
			}
			p, ok := fileinfo.ParseProperty(args[1])
			if !ok {
				return fmt.Errorf("unknown property %q", args[1])
			}
			v, ok := a.resolver.ResourceValue(ref, p)
			if !ok {
				return fmt.Errorf("%s of %s: %w", p, ref, errUnavailable)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newSameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "same PATH OTHER",
		Short: "Report whether PATH and OTHER reference the same item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := a.parseRefs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.resolver.SameResource(refs[0], refs[1]))
			return nil
		},
	}
}

func newTypeCmd(a *app) *cobra.Command {
	var ancestors bool
	cmd := &cobra.Command{
		Use:   "type PATH",
		Short: "Print the type identifier of PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.parseRef(args[0])
			if err != nil {
				return err
			}
			id, ok := a.resolver.TypeIdentifier(ref)
			if !ok {
				return fmt.Errorf("type of %s: %w", ref, errUnavailable)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			if ancestors {
				for _, parent := range a.registry.Ancestors(id) {
					fmt.Fprintln(cmd.OutOrStdout(), "  "+parent)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ancestors, "ancestors", false, "Also list the types it conforms to, nearest first")
	return cmd
}

func newConformsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "conforms PATH UTI",
		Short: "Report whether the type of PATH conforms to UTI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.parseRef(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.resolver.ConformsToType(ref, args[1]))
			return nil
		},
	}
}

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match PATH UTI...",
		Short: "Print the first UTI the type of PATH conforms to",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.parseRef(args[0])
			if err != nil {
				return err
			}
			id, ok := a.resolver.MatchingType(ref, args[1:])
			if !ok {
				return fmt.Errorf("%s matches none of %s", ref, strings.Join(args[1:], ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newExtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ext UTI",
		Short: "Print the preferred filename extension of UTI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, ok := a.resolver.PreferredExtension(args[0])
			if !ok {
				return fmt.Errorf("%s has no extension", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ext)
			return nil
		},
	}
}

func newUTICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "uti EXT",
		Short: "Print the type identifier declared for a filename extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := a.resolver.TypeForExtension(args[0])
			if !ok {
				return fmt.Errorf("no type declared for extension %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the declared type identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderTypes(cmd.OutOrStdout(), a.registry)
			return nil
		},
	}
}

func printRefs(cmd *cobra.Command, refs []fileinfo.Reference) {
	for _, ref := range refs {
		fmt.Fprintln(cmd.OutOrStdout(), ref.String())
	}
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func newForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget SHARE",
		Short: "Delete the saved credentials of an SMB share",
		Long:  "Delete the saved credentials of an SMB share, given as smb://host/share or \\\\host\\share.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := fileinfo.ParseReference(args[0])
			if err != nil {
				return err
			}
			if ref.Scheme() != fileinfo.SchemeSMB {
				return fmt.Errorf("%s is not an SMB share", ref)
			}
			a.creds.Forget(ref.Host(), ref.Share())
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.manager.Path())
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.manager.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.manager.Path())
			}
			if err := a.manager.Save(config.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.manager.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
