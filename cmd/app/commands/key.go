package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cryptoUseCase "github.com/allisson/finvault/internal/crypto/usecase"
)

// RunInitKey generates and installs a fresh master key on this device.
// Fails if a key is already installed: overwriting would orphan every record
// encrypted under the old key. The new key's recovery phrase is printed once;
// it is the only way to recover the vault on another device.
func RunInitKey(
	ctx context.Context,
	keyUseCase cryptoUseCase.KeyUseCase,
	logger *slog.Logger,
	w io.Writer,
) error {
	status, err := keyUseCase.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize master key: %w", err)
	}

	exported, err := keyUseCase.Export(ctx)
	if err != nil {
		return fmt.Errorf("failed to export new master key: %w", err)
	}

	fmt.Fprintln(w, "Master key installed.")
	fmt.Fprintf(w, "Created at: %s\n", status.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recovery phrase (write it down and store it safely - it will not be shown again):")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", exported.Phrase)

	logger.Info("master key initialized via cli")
	return nil
}

// RunKeyStatus reports whether a master key is installed on this device.
func RunKeyStatus(
	ctx context.Context,
	keyUseCase cryptoUseCase.KeyUseCase,
	w io.Writer,
) error {
	status, err := keyUseCase.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read key status: %w", err)
	}

	if !status.Installed {
		fmt.Fprintln(w, "No master key installed. Run 'init-key' or 'import-key'.")
		return nil
	}

	fmt.Fprintln(w, "Master key installed.")
	fmt.Fprintf(w, "Created at: %s\n", status.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if !status.LastUsed.IsZero() {
		fmt.Fprintf(w, "Last used:  %s\n", status.LastUsed.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// RunExportKey prints the installed key's recovery phrase and exported string.
func RunExportKey(
	ctx context.Context,
	keyUseCase cryptoUseCase.KeyUseCase,
	w io.Writer,
) error {
	exported, err := keyUseCase.Export(ctx)
	if err != nil {
		return fmt.Errorf("failed to export master key: %w", err)
	}

	fmt.Fprintln(w, "Recovery phrase:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", exported.Phrase)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Exported key: %s\n", exported.Exported)
	return nil
}

// RunImportKey installs a master key from its recovery phrase or exported
// string. Exactly one of phrase and exported must be non-empty.
func RunImportKey(
	ctx context.Context,
	keyUseCase cryptoUseCase.KeyUseCase,
	logger *slog.Logger,
	w io.Writer,
	phrase string,
	exported string,
) error {
	if (phrase == "") == (exported == "") {
		return fmt.Errorf("exactly one of --phrase and --exported must be provided")
	}

	var err error
	if phrase != "" {
		_, err = keyUseCase.ImportPhrase(ctx, phrase)
	} else {
		_, err = keyUseCase.ImportExported(ctx, exported)
	}
	if err != nil {
		return fmt.Errorf("failed to import master key: %w", err)
	}

	fmt.Fprintln(w, "Master key imported.")
	logger.Info("master key imported via cli")
	return nil
}

// RunDeleteKey irreversibly removes the master key from this device. Without
// the recovery phrase every encrypted record becomes permanently unreadable,
// so the command prompts for confirmation unless --yes is given.
func RunDeleteKey(
	ctx context.Context,
	keyUseCase cryptoUseCase.KeyUseCase,
	logger *slog.Logger,
	streams IOTuple,
	skipConfirm bool,
) error {
	if !skipConfirm {
		fmt.Fprintln(streams.Writer, "This permanently deletes the master key from this device.")
		fmt.Fprintln(streams.Writer, "Without the recovery phrase, all encrypted data becomes unreadable.")
		fmt.Fprint(streams.Writer, "Type 'yes' to continue: ")

		reader := bufio.NewReader(streams.Reader)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(streams.Writer, "Aborted.")
			return nil
		}
	}

	if err := keyUseCase.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete master key: %w", err)
	}

	fmt.Fprintln(streams.Writer, "Master key deleted.")
	logger.Info("master key deleted via cli")
	return nil
}
