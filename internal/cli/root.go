// Package cli wires the fileref commands: configuration, logging, and a
// Resolver shared by every subcommand.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fileref/internal/config"
	"fileref/internal/constants"
	"fileref/internal/fileinfo"
	"fileref/internal/secret"
	"fileref/internal/uti"
)

// app carries the state built in PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	remember   bool

	manager  config.ManagerInterface
	config   *config.Config
	registry *uti.Registry
	creds    *fileinfo.CredentialChain
	resolver *fileinfo.Resolver
}

// NewRootCmd returns the fileref command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           constants.ApplicationName,
		Short:         constants.ApplicationTitle,
		Long:          "Inspect local and SMB file references: relative paths, ancestry, resource properties and type identifiers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file (.json or .yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Set the log format (text, json)")
	cmd.PersistentFlags().BoolVar(&a.remember, "remember-credentials", false, "Save SMB credentials from URLs or the environment once they work")

	if err := cmd.MarkPersistentFlagFilename("config", "json", "yaml", "yml"); err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		return a.setup(cc.ErrOrStderr())
	}

	cmd.AddCommand(
		newRelpathCmd(a),
		newBasedInCmd(a),
		newComponentsCmd(a),
		newAppendCmd(a),
		newInfoCmd(a),
		newPropertyCmd(a),
		newSameCmd(a),
		newTypeCmd(a),
		newConformsCmd(a),
		newMatchCmd(a),
		newExtCmd(a),
		newUTICmd(a),
		newTypesCmd(a),
		newForgetCmd(a),
		newConfigCmd(a),
	)

	return cmd
}

func (a *app) setup(stderr io.Writer) error {
	var manager config.ManagerInterface = config.NewManager()
	if a.configPath != "" {
		manager = config.NewManagerWithPath(a.configPath)
	}
	cfg, err := manager.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if a.remember {
		cfg.SMB.RememberCredentials = true
	}
	if err := configureLogging(stderr, cfg.Logging); err != nil {
		return err
	}
	log.WithField("path", manager.Path()).Debug("configuration loaded")

	reg := uti.Default()
	if err := cfg.ApplyTypes(reg); err != nil {
		return fmt.Errorf("declare configured types: %w", err)
	}

	a.manager = manager
	a.config = cfg
	a.registry = reg
	a.creds = fileinfo.NewCredentialChain(
		secret.Open(cfg.SMB.UseKeyring),
		envCredentials{persist: cfg.SMB.RememberCredentials},
	)
	a.resolver = fileinfo.NewResolver(
		fileinfo.WithRegistry(reg),
		fileinfo.WithCredentials(a.creds),
		fileinfo.WithSMBDialTimeout(cfg.SMB.Timeout()),
		fileinfo.WithContentSniffing(!cfg.Types.DisableSniffing),
		fileinfo.WithLogger(log.StandardLogger()),
	)
	return nil
}

func configureLogging(w io.Writer, c config.LoggingConfig) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	log.SetOutput(w)
	log.SetLevel(level)
	switch strings.ToLower(c.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q", c.Format)
	}
	return nil
}

// parseRef parses a command-line reference. Credentials embedded in an smb
// URL are kept for the rest of the run, and saved to the secret store after
// a successful connection when smb.rememberCredentials is set.
func (a *app) parseRef(s string) (fileinfo.Reference, error) {
	ref, err := fileinfo.ParseReference(s)
	if err != nil {
		return fileinfo.Reference{}, err
	}
	if cred, ok := fileinfo.CredentialsFromURL(s); ok {
		cred.Persist = a.config.SMB.RememberCredentials
		a.creds.Put(ref.Host(), ref.Share(), cred)
	}
	return ref, nil
}

func (a *app) parseRefs(args []string) ([]fileinfo.Reference, error) {
	refs := make([]fileinfo.Reference, 0, len(args))
	for _, s := range args {
		ref, err := a.parseRef(s)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// envCredentials supplies SMB credentials from the environment when neither
// the URL nor the secret store has any.
type envCredentials struct {
	persist bool
}

const (
	envSMBDomain   = "FILEREF_SMB_DOMAIN"
	envSMBUsername = "FILEREF_SMB_USERNAME"
	envSMBPassword = "FILEREF_SMB_PASSWORD"
)

func (e envCredentials) Get(host, share, relPath string) (fileinfo.Credentials, error) {
	return fileinfo.Credentials{
		Domain:   os.Getenv(envSMBDomain),
		Username: os.Getenv(envSMBUsername),
		Password: os.Getenv(envSMBPassword),
		Persist:  e.persist,
	}, nil
}
