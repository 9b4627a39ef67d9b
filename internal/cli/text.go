package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rcli/internal/config"
	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/crypto"
	"github.com/mrz1836/rcli/internal/crypto/aead"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/process"
	"github.com/mrz1836/rcli/internal/source"
	"github.com/mrz1836/rcli/internal/tui"
)

// textFlags holds flags shared by the text subcommands.
type textFlags struct {
	input       string
	key         string
	format      string
	signature   string
	outputDir   string
	legacyNonce bool
}

// AddTextCommand adds the text command group to the root command.
func AddTextCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Sign, verify, encrypt and decrypt text",
		Long: `Sign and verify text with a BLAKE3 keyed hash or Ed25519, generate keys,
and encrypt or decrypt text with ChaCha20-Poly1305.

Signatures and ciphertexts are base64url encoded without padding.
Use '-' as the input to read from standard input.`,
	}

	cmd.AddCommand(newTextSignCmd(&textFlags{}))
	cmd.AddCommand(newTextVerifyCmd(&textFlags{}))
	cmd.AddCommand(newTextGenerateCmd(&textFlags{}))
	cmd.AddCommand(newTextEncryptCmd(&textFlags{}))
	cmd.AddCommand(newTextDecryptCmd(&textFlags{}))

	root.AddCommand(cmd)
}

func addInputFlag(cmd *cobra.Command, flags *textFlags) {
	cmd.Flags().StringVarP(&flags.input, "input", "i", constants.StdinMarker, "input file, or '-' for stdin")
}

func addFormatFlag(cmd *cobra.Command, flags *textFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "signing format (blake3|ed25519, default from text.format)")
}

func newTextSignCmd(flags *textFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign text",
		Long: `Sign the input and print a base64url signature.

Examples:
  rcli text sign -i message.txt -k blake3.txt
  echo -n hello | rcli text sign -k ed25519.sk --format ed25519`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextSign(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}
	addInputFlag(cmd, flags)
	addFormatFlag(cmd, flags)
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "signing key file (default from text.key_dir)")
	return cmd
}

func newTextVerifyCmd(flags *textFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a text signature",
		Long: `Verify a base64url signature over the input.

Exits 0 when the signature matches and 1 when it does not.

Examples:
  rcli text verify -i message.txt -k blake3.txt --sig <signature>
  rcli text verify -i message.txt -k ed25519.pk --format ed25519 --sig <signature>`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextVerify(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}
	addInputFlag(cmd, flags)
	addFormatFlag(cmd, flags)
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "verifying key file (default from text.key_dir)")
	cmd.Flags().StringVar(&flags.signature, "sig", "", "base64url signature")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func newTextGenerateCmd(flags *textFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate signing keys",
		Long: `Generate fresh key material into an existing directory.

blake3 writes blake3.txt; ed25519 writes ed25519.sk and ed25519.pk.
Files are created with 0600 permissions and replace existing keys.

Examples:
  rcli text generate -O ./keys
  rcli text generate --format ed25519 -O ./keys`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextGenerate(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}
	addFormatFlag(cmd, flags)
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "O", "", "directory to write keys into (default from text.key_dir)")
	return cmd
}

func newTextEncryptCmd(flags *textFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text",
		Long: `Encrypt the input with ChaCha20-Poly1305 and print base64url ciphertext.

The key is given as text; its first 32 bytes are used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextEncrypt(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}
	addCipherFlags(cmd, flags)
	return cmd
}

func newTextDecryptCmd(flags *textFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt text",
		Long: `Decrypt base64url ciphertext produced by 'rcli text encrypt'.

Use --legacy-nonce for payloads written with the key-derived nonce.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextDecrypt(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}
	addCipherFlags(cmd, flags)
	return cmd
}

func addCipherFlags(cmd *cobra.Command, flags *textFlags) {
	addInputFlag(cmd, flags)
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "key text (at least 32 bytes)")
	cmd.Flags().BoolVar(&flags.legacyNonce, "legacy-nonce", false, "use the key-derived nonce of older releases")
	_ = cmd.MarkFlagRequired("key")
}

// resolveFormat returns the --format value, falling back to text.format.
func resolveFormat(flag string, cfg *config.Config) (crypto.Format, error) {
	if flag == "" {
		flag = cfg.Text.Format
	}
	return crypto.ParseFormat(flag)
}

// resolveKeyPath returns keyFlag, or the format's default key file under
// text.key_dir. signing selects the private half for asymmetric formats.
func resolveKeyPath(keyFlag string, cfg *config.Config, format crypto.Format, signing bool) (string, error) {
	path := keyFlag
	if path == "" {
		names := format.KeyFileNames()
		name := names[len(names)-1]
		if signing {
			name = names[0]
		}
		path = filepath.Join(cfg.Text.KeyDir, name)
	}
	if err := checkFile(path); err != nil {
		return "", fmt.Errorf("key file: %w", err)
	}
	return path, nil
}

// checkInput rejects an input reference that is neither stdin nor a file.
func checkInput(ref string) error {
	if !source.Exists(ref) {
		return fmt.Errorf("input %q: %w", ref, errors.ErrPathNotFound)
	}
	return nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%q: %w", path, errors.ErrPathNotFound)
	}
	return nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory %q: %w", path, errors.ErrPathNotFound)
	}
	return nil
}

func runTextSign(ctx context.Context, w io.Writer, outFmt string, flags *textFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	format, err := resolveFormat(flags.format, cfg)
	if err != nil {
		return err
	}
	if err = checkInput(flags.input); err != nil {
		return err
	}
	keyPath, err := resolveKeyPath(flags.key, cfg, format, true)
	if err != nil {
		return err
	}

	sig, err := process.Sign(ctx, flags.input, keyPath, format)
	if err != nil {
		return err
	}
	tui.NewOutput(w, outFmt).Value(sig)
	return nil
}

func runTextVerify(ctx context.Context, w io.Writer, outFmt string, flags *textFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	format, err := resolveFormat(flags.format, cfg)
	if err != nil {
		return err
	}
	if err = checkInput(flags.input); err != nil {
		return err
	}
	keyPath, err := resolveKeyPath(flags.key, cfg, format, false)
	if err != nil {
		return err
	}

	ok, err := process.Verify(ctx, flags.input, keyPath, format, flags.signature)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(errors.ErrVerificationFailed, format.String()+" signature does not match")
	}
	tui.NewOutput(w, outFmt).Success("Signature verified (" + format.String() + ")")
	return nil
}

func runTextGenerate(ctx context.Context, w io.Writer, outFmt string, flags *textFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	format, err := resolveFormat(flags.format, cfg)
	if err != nil {
		return err
	}
	dir := flags.outputDir
	if dir == "" {
		dir = cfg.Text.KeyDir
	}
	if err = checkDir(dir); err != nil {
		return err
	}

	paths, err := process.GenerateKey(ctx, format, dir)
	if err != nil {
		return err
	}

	out := tui.NewOutput(w, outFmt)
	for _, p := range paths {
		out.Success("Wrote " + p)
	}
	return nil
}

// cipherOptions maps --legacy-nonce and cipher.nonce_mode to process options.
func cipherOptions(cfg *config.Config, legacy bool) ([]process.CipherOption, error) {
	mode := aead.NonceKeyDerived
	if !legacy {
		var err error
		if mode, err = aead.ParseNonceMode(cfg.Cipher.NonceMode); err != nil {
			return nil, err
		}
	}
	return []process.CipherOption{process.WithNonceMode(mode)}, nil
}

func runTextEncrypt(ctx context.Context, w io.Writer, outFmt string, flags *textFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err = checkInput(flags.input); err != nil {
		return err
	}
	opts, err := cipherOptions(cfg, flags.legacyNonce)
	if err != nil {
		return err
	}

	ciphertext, err := process.Encrypt(ctx, flags.input, flags.key, opts...)
	if err != nil {
		return err
	}
	tui.NewOutput(w, outFmt).Value(ciphertext)
	return nil
}

func runTextDecrypt(ctx context.Context, w io.Writer, outFmt string, flags *textFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err = checkInput(flags.input); err != nil {
		return err
	}
	opts, err := cipherOptions(cfg, flags.legacyNonce)
	if err != nil {
		return err
	}

	plaintext, err := process.Decrypt(ctx, flags.input, flags.key, opts...)
	if err != nil {
		return err
	}
	tui.NewOutput(w, outFmt).Value(plaintext)
	return nil
}
