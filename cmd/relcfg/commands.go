package main

import (
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/relcfg/internal/config"
	"github.com/provide-io/relcfg/pkg"
	"github.com/provide-io/relcfg/pkg/logging"
	"github.com/provide-io/relcfg/pkg/utils/permissions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	logLevel    string
	versionFlag bool
)

type sealFlags struct {
	input   string
	output  string
	keyFile string
	mode    string
}

type openFlags struct {
	input      string
	output     string
	keyFile    string
	mode       string
	noValidate bool
}

type verifyFlags struct {
	plaintext string
	token     string
	keyFile   string
	checksum  string
}

func newRootCmd() *cobra.Command {
	seal := &sealFlags{}

	rootCmd := &cobra.Command{
		Use:   "relcfg",
		Short: "Obfuscate release configs for object storage",
		Long: `relcfg turns a plaintext JSON release config into an obfuscated token
(repeating-key XOR, then base64) that the client app decodes with the same
key, and back. Without a subcommand it runs "seal" with the default file
names.

This is obfuscation, not encryption: the key ships inside the client.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion()
				return nil
			}
			return runSeal(cmd, seal)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error; json:<level> for JSON)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
	bindSealFlags(rootCmd.Flags(), seal)

	rootCmd.AddCommand(newSealCmd(), newOpenCmd(), newVerifyCmd())
	return rootCmd
}

func bindSealFlags(fs *pflag.FlagSet, f *sealFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "Plaintext JSON config (default "+config.DefaultInput+", env "+config.EnvInput+")")
	fs.StringVarP(&f.output, "output", "o", "", "Token file to write (default "+config.DefaultOutput+", env "+config.EnvOutput+")")
	fs.StringVar(&f.keyFile, "key-file", "", "Read the key from this file (env "+config.EnvKeyFile+")")
	fs.StringVar(&f.mode, "mode", "", "Token file permissions, octal (default 0644, env "+config.EnvMode+")")
}

func newSealCmd() *cobra.Command {
	f := &sealFlags{}
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encode a plaintext JSON config into a token file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeal(cmd, f)
		},
	}
	bindSealFlags(cmd.Flags(), f)
	return cmd
}

func newOpenCmd() *cobra.Command {
	f := &openFlags{}
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decode a token file back into plaintext JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Token file to decode (default "+config.DefaultOutput+", env "+config.EnvOutput+")")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "Plaintext destination, - for stdout")
	cmd.Flags().StringVar(&f.keyFile, "key-file", "", "Read the key from this file (env "+config.EnvKeyFile+")")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Plaintext file permissions, octal (default 0600)")
	cmd.Flags().BoolVar(&f.noValidate, "no-validate", false, "Write decoded bytes even if they are not valid JSON")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	f := &verifyFlags{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a token file decodes to a plaintext file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.plaintext, "plaintext", "", "Plaintext JSON config (default "+config.DefaultInput+")")
	cmd.Flags().StringVar(&f.token, "token", "", "Token file (default "+config.DefaultOutput+")")
	cmd.Flags().StringVar(&f.keyFile, "key-file", "", "Read the key from this file (env "+config.EnvKeyFile+")")
	cmd.Flags().StringVar(&f.checksum, "checksum", "", "Expected token checksum, e.g. sha256:<hex>")
	return cmd
}

// setup resolves configuration and the logger shared by every command.
func setup(name, keyFile string) (*config.Config, hclog.Logger, error) {
	level, source := logging.GetLogLevel(logLevel)
	logger := logging.NewLogger(name, level, nil)
	logger.Debug("Log level", "level", level, "source", source)

	cfg, err := config.Load()
	if err != nil {
		return nil, logger, configError(err)
	}
	if keyFile != "" {
		if err := cfg.SetKeyFile(keyFile); err != nil {
			return nil, logger, configError(err)
		}
	}
	return cfg, logger, nil
}

func runSeal(cmd *cobra.Command, f *sealFlags) error {
	cfg, logger, err := setup("relcfg-seal", f.keyFile)
	if err != nil {
		return err
	}
	if f.input != "" {
		cfg.PlaintextPath = f.input
	}
	if f.output != "" {
		cfg.TokenPath = f.output
	}
	if f.mode != "" {
		mode, err := permissions.ParseOctalString(f.mode, cfg.TokenMode)
		if err != nil {
			return configError(err)
		}
		cfg.TokenMode = mode
	}

	_, err = pkg.SealWithLogger(cfg, logger)
	return withExitCode(err)
}

func runOpen(cmd *cobra.Command, f *openFlags) error {
	cfg, logger, err := setup("relcfg-open", f.keyFile)
	if err != nil {
		return err
	}
	if f.input != "" {
		cfg.TokenPath = f.input
	}
	if f.mode != "" {
		mode, err := permissions.ParseOctalString(f.mode, cfg.PlaintextMode)
		if err != nil {
			return configError(err)
		}
		cfg.PlaintextMode = mode
	}

	_, err = pkg.OpenWithLogger(cfg, pkg.OpenOptions{
		Dest:           f.output,
		SkipValidation: f.noValidate,
	}, logger)
	return withExitCode(err)
}

func runVerify(cmd *cobra.Command, f *verifyFlags) error {
	cfg, logger, err := setup("relcfg-verify", f.keyFile)
	if err != nil {
		return err
	}
	if f.plaintext != "" {
		cfg.PlaintextPath = f.plaintext
	}
	if f.token != "" {
		cfg.TokenPath = f.token
	}

	_, err = pkg.VerifyWithLogger(cfg, f.checksum, logger)
	return withExitCode(err)
}
