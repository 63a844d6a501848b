// Package storage persists the gamepad and addon option records as a single
// checksummed image.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/Alia5/padcore/gamepad"
	"github.com/Alia5/padcore/options"
)

// ErrChecksum reports a record whose stored checksum does not match its content.
var ErrChecksum = errors.New("checksum mismatch")

// ErrBadImage reports an image with a wrong magic, version or size.
var ErrBadImage = errors.New("invalid storage image")

const (
	imageVersion = 1
	headerSize   = 5
)

var imageMagic = [4]byte{'P', 'A', 'D', 'C'}

// Offsets of the records inside the image.
const (
	GamepadOffset = headerSize
	AddonsOffset  = GamepadOffset + gamepad.OptionsSize
)

// ImageSize is the total size of a storage image.
var ImageSize = AddonsOffset + options.AddonsSize

// Storage holds the live option records. It is not safe for concurrent use.
type Storage struct {
	medium Medium
	logger *slog.Logger

	defGamepad gamepad.Options
	defAddons  options.Addons

	gamepad gamepad.Options
	addons  options.Addons
}

// Open loads the image from medium. A missing image is created from the
// defaults. A record failing its checksum is reset to its default and the
// image re-saved immediately; this is not reported as an error.
func Open(medium Medium, defGamepad gamepad.Options, defAddons options.Addons, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	defGamepad.Checksum = defGamepad.ComputeChecksum()
	defAddons.Checksum = defAddons.ComputeChecksum()
	s := &Storage{
		medium:     medium,
		logger:     logger,
		defGamepad: defGamepad,
		defAddons:  defAddons,
		gamepad:    defGamepad,
		addons:     defAddons,
	}

	data, err := medium.ReadAll()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("no stored options, writing defaults")
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read storage: %w", err)
	}

	img, err := DecodeImage(data)
	dirty := false
	switch {
	case err != nil:
		logger.Info("stored options unreadable, resetting to defaults", "error", err)
		dirty = true
	default:
		if img.GamepadErr != nil {
			logger.Info("gamepad options failed checksum, resetting to defaults")
			dirty = true
		} else {
			s.gamepad = img.Gamepad
		}
		if img.AddonsErr != nil {
			logger.Info("addon options failed checksum, resetting to defaults")
			dirty = true
		} else {
			s.addons = img.Addons
		}
	}
	if dirty {
		if err := s.Save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Image is a decoded storage image. A record whose checksum does not match
// carries an error wrapping ErrChecksum.
type Image struct {
	Gamepad    gamepad.Options
	Addons     options.Addons
	GamepadErr error
	AddonsErr  error
}

// DecodeImage splits an image into its records and validates each checksum.
// Structural problems are returned as ErrBadImage.
func DecodeImage(data []byte) (Image, error) {
	var img Image
	if len(data) < ImageSize {
		return img, fmt.Errorf("%w: %d bytes, want %d: %w", ErrBadImage, len(data), ImageSize, io.ErrUnexpectedEOF)
	}
	if !bytes.Equal(data[:4], imageMagic[:]) {
		return img, fmt.Errorf("%w: bad magic %x", ErrBadImage, data[:4])
	}
	if data[4] != imageVersion {
		return img, fmt.Errorf("%w: version %d", ErrBadImage, data[4])
	}

	if err := img.Gamepad.UnmarshalBinary(data[GamepadOffset:AddonsOffset]); err != nil {
		return img, fmt.Errorf("%w: %w", ErrBadImage, err)
	}
	if !img.Gamepad.Valid() {
		img.GamepadErr = fmt.Errorf("gamepad record: %w", ErrChecksum)
	}
	if err := img.Addons.UnmarshalBinary(data[AddonsOffset:]); err != nil {
		return img, fmt.Errorf("%w: %w", ErrBadImage, err)
	}
	if !img.Addons.Valid() {
		img.AddonsErr = fmt.Errorf("addon record: %w", ErrChecksum)
	}
	return img, nil
}

// EncodeImage renders both records into an image.
func EncodeImage(g gamepad.Options, a options.Addons) ([]byte, error) {
	gb, err := g.MarshalBinary()
	if err != nil {
		return nil, err
	}
	ab, err := a.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, ImageSize)
	out = append(out, imageMagic[:]...)
	out = append(out, imageVersion)
	out = append(out, gb...)
	out = append(out, ab...)
	return out, nil
}

func (s *Storage) GamepadOptions() gamepad.Options { return s.gamepad }

// SetGamepadOptions replaces the record and refreshes its checksum. Call Save to persist.
func (s *Storage) SetGamepadOptions(o gamepad.Options) {
	o.Checksum = o.ComputeChecksum()
	s.gamepad = o
}

func (s *Storage) AddonOptions() options.Addons { return s.addons }

// SetAddonOptions replaces the record and refreshes its checksum. Call Save to persist.
func (s *Storage) SetAddonOptions(a options.Addons) {
	a.Checksum = a.ComputeChecksum()
	s.addons = a
}

// Save writes both records.
func (s *Storage) Save() error {
	img, err := EncodeImage(s.gamepad, s.addons)
	if err != nil {
		return err
	}
	if err := s.medium.WriteAll(img); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	s.logger.Debug("options saved", "bytes", len(img))
	return nil
}

// Reset restores both records to their defaults and saves.
func (s *Storage) Reset() error {
	s.gamepad = s.defGamepad
	s.addons = s.defAddons
	s.logger.Info("options reset to defaults")
	return s.Save()
}
