package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Alia5/padcore/internal/configpaths"
	"github.com/Alia5/padcore/options"
	"github.com/Alia5/padcore/storage"
)

// OptionsCommand inspects and resets the persisted options image.
type OptionsCommand struct {
	Show  OptionsShow  `cmd:"" help:"Print the persisted gamepad and addon options"`
	Reset OptionsReset `cmd:"" help:"Reset the persisted options to the board defaults"`
}

type StorageFlags struct {
	Storage string `help:"Options image file (defaults to the user config dir)" type:"path" env:"PADCORE_STORAGE"`
	Board   string `help:"Board file supplying the defaults" type:"path" env:"PADCORE_BOARD"`
}

func (f StorageFlags) path() (string, error) {
	if f.Storage != "" {
		return f.Storage, nil
	}
	return configpaths.DefaultStoragePath()
}

type OptionsShow struct {
	StorageFlags `embed:""`
	Format       string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`

	Out io.Writer `kong:"-"`
}

// Run prints the stored records in board-file form. Records failing their
// checksum are reported and shown as stored.
func (c *OptionsShow) Run(logger *slog.Logger) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	path, err := c.path()
	if err != nil {
		return err
	}
	file, err := loadBoard(c.Board)
	if err != nil {
		return err
	}

	data, err := storage.FileMedium{Path: path}.ReadAll()
	if errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(out, "# %s: nothing stored, defaults apply\n", path)
	} else if err != nil {
		return fmt.Errorf("read storage: %w", err)
	} else {
		img, err := storage.DecodeImage(data)
		if err != nil {
			return err
		}
		for _, e := range []error{img.GamepadErr, img.AddonsErr} {
			if e != nil {
				logger.Warn("stored record invalid, it will be reset on next start", "error", e)
				_, _ = fmt.Fprintf(out, "# %v\n", e)
			}
		}
		file.Gamepad = options.GamepadSectionFrom(img.Gamepad)
		file.Addons = options.AddonsSectionFrom(img.Addons)
	}

	rendered, err := options.Encode(file, normalizeFormat(c.Format))
	if err != nil {
		return err
	}
	_, err = out.Write(rendered)
	return err
}

type OptionsReset struct {
	StorageFlags `embed:""`
}

// Run writes the board defaults with fresh checksums.
func (c *OptionsReset) Run(logger *slog.Logger) error {
	path, err := c.path()
	if err != nil {
		return err
	}
	file, err := loadBoard(c.Board)
	if err != nil {
		return err
	}
	defGamepad, err := file.Gamepad.Options()
	if err != nil {
		return fmt.Errorf("gamepad defaults: %w", err)
	}
	defAddons, err := file.Addons.Addons()
	if err != nil {
		return fmt.Errorf("addon defaults: %w", err)
	}
	st, err := storage.Open(storage.FileMedium{Path: path}, defGamepad, defAddons, logger)
	if err != nil {
		return err
	}
	if err := st.Reset(); err != nil {
		return err
	}
	logger.Info("options reset", "path", path)
	return nil
}
