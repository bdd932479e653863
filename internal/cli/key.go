package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/almanac/internal/keyring"
)

// KeySetCmd stores the generator API key in the OS keyring.
type KeySetCmd struct {
	Key string `arg:"" optional:"" help:"API key. Prompted for when omitted."`
}

func (c *KeySetCmd) Run(ctx *Context) error {
	key := strings.TrimSpace(c.Key)
	if key == "" {
		if !ctx.Interactive {
			return errors.New("API key argument is required when not running in a terminal")
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Generator API key").
					EchoMode(huh.EchoModePassword).
					Value(&key),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("API key prompt failed: %w", err)
		}
		key = strings.TrimSpace(key)
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	ctx.printf("%s %s\n", okStyle.Render("✓ API key stored in OS keyring"), keyring.Mask(key))
	return nil
}

type KeyDeleteCmd struct{}

func (c *KeyDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.println("✓ API key removed from OS keyring")
	return nil
}

// KeyStatusCmd reports where the API key would be read from.
type KeyStatusCmd struct{}

func (c *KeyStatusCmd) Run(ctx *Context) error {
	switch {
	case ctx.Config.Generator.APIKey != "":
		ctx.printf("API key: from config (%s)\n", keyring.Mask(ctx.Config.Generator.APIKey))
	case os.Getenv(APIKeyEnvVar) != "":
		ctx.printf("API key: from %s (%s)\n", APIKeyEnvVar, keyring.Mask(os.Getenv(APIKeyEnvVar)))
	default:
		key, err := keyring.GetAPIKey()
		switch {
		case err == nil:
			ctx.printf("API key: from OS keyring (%s)\n", keyring.Mask(key))
		case errors.Is(err, keyring.ErrNotFound):
			ctx.println("API key: not configured")
		default:
			ctx.printf("API key: keyring unavailable (%v)\n", err)
		}
	}
	ctx.printf("Generator provider: %s\n", ctx.Config.Generator.Provider)
	return nil
}
