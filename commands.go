package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/blockcipher"
	"github.com/go-i2p/reesa/lib/config"
	"github.com/go-i2p/reesa/lib/crypto/rsa"
	"github.com/go-i2p/reesa/lib/filecrypt"
	"github.com/go-i2p/reesa/lib/util/signals"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// app carries per-invocation state for the commands. The service is built
// on first use so help and usage errors never touch the configuration.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
	svc     *filecrypt.Service
}

// run executes one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "reesa: %v\n", err)
	}
	return exitCode(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reesa",
		Short: "Block-mode RSA file encryption",
		Long: `reesa encrypts and decrypts files with RSA applied block by block.

Keys are stored as JSON records of six decimal integers. A public key is
the same record with p, q, private_exponent and totient_modulus set to 0.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.reesa/config.yaml)")

	root.AddCommand(a.genKeyCmd())
	root.AddCommand(a.showKeyCmd())
	root.AddCommand(a.pubKeyCmd())
	root.AddCommand(a.encryptCmd())
	root.AddCommand(a.decryptCmd())
	return root
}

func (a *app) service() (*filecrypt.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	config.CfgFile = a.cfgFile
	if err := config.InitConfig(); err != nil {
		return nil, oops.Wrapf(err, "failed to load configuration")
	}
	cfg, err := config.CurrentConfig()
	if err != nil {
		return nil, err
	}
	engine := rsa.NewEngine(cfg.Key.Bits, cfg.Key.PublicExponent)
	svc, err := filecrypt.NewService(cfg, engine, engine)
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func (a *app) genKeyCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "gen_key <keyfile>",
		Short: "Generate a new private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			info, err := svc.GenerateKey(args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "generated %d-bit key %s\nfingerprint %s\n", info.Bits, args[0], info.Fingerprint)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing key file")
	return cmd
}

func (a *app) showKeyCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show_key <keyfile>",
		Short: "Validate a key file and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := renderer(output)
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			info, err := svc.ShowKey(args[0])
			if err != nil {
				return err
			}
			out, err := render(info)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.stdout, out)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json, yaml")
	return cmd
}

func (a *app) pubKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pub_key <keyfile> <pubfile>",
		Short: "Write the public half of a key to a new key file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			info, err := svc.ExportPublic(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "wrote public key %s\nfingerprint %s\n", args[1], info.Fingerprint)
			return nil
		},
	}
}

func (a *app) encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <keyfile> <plainfile> <cipherfile>",
		Short: "Encrypt a file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd, "encrypt", func(ctx context.Context, svc *filecrypt.Service) (blockcipher.Stats, error) {
				return svc.EncryptFile(ctx, args[0], args[1], args[2])
			})
		},
	}
}

func (a *app) decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <keyfile> <cipherfile> <plainfile>",
		Short: "Decrypt a file with a private key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd, "decrypt", func(ctx context.Context, svc *filecrypt.Service) (blockcipher.Stats, error) {
				return svc.DecryptFile(ctx, args[0], args[1], args[2])
			})
		},
	}
}

// transform runs a file operation under a context that is cancelled on
// SIGINT or SIGTERM.
func (a *app) transform(cmd *cobra.Command, name string, op func(context.Context, *filecrypt.Service) (blockcipher.Stats, error)) error {
	svc, err := a.service()
	if err != nil {
		return err
	}
	ctx, stop := signals.NotifyContext(cmd.Context())
	defer stop()

	stats, err := op(ctx, svc)
	log.WithFields(logger.Fields{
		"at":        "transform",
		"op":        name,
		"blocks":    stats.Blocks,
		"bytes_in":  stats.BytesIn,
		"bytes_out": stats.BytesOut,
	}).Debug("File operation done")
	return err
}
