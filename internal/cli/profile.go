package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wxstory/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles (API keys, preferences, locations)",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.NewStore()
		if err != nil {
			return err
		}
		name := args[0]
		if _, err := store.Create(name); err != nil {
			return err
		}
		fmt.Printf("%s Profile '%s' created\n", color.GreenString("✓"), color.CyanString(name))

		if names, err := store.List(); err == nil && len(names) == 1 {
			fmt.Printf("%s Automatically set as active profile\n", color.GreenString("✓"))
		}

		dim := color.New(color.Faint)
		fmt.Println()
		fmt.Println("Set API keys:")
		fmt.Printf("  %s wxstory profile set gemini_key YOUR_KEY\n", dim.Sprint("$"))
		fmt.Printf("  %s wxstory profile set openrouter_key YOUR_KEY\n", dim.Sprint("$"))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.NewStore()
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles found.")
			fmt.Printf("Create one with: %s wxstory profile create <name>\n", color.New(color.Faint).Sprint("$"))
			return nil
		}

		current, _ := store.CurrentName()

		fmt.Println()
		fmt.Println(color.New(color.Bold).Sprint("Profiles:"))
		for _, name := range names {
			if name == current {
				fmt.Printf("  %s %s\n", color.GreenString("●"), color.New(color.FgCyan, color.Bold).Sprint(name))
			} else {
				fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("○"), name)
			}
		}
		fmt.Println()
		fmt.Printf("%s = active profile\n", color.GreenString("●"))
		return nil
	},
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch to a different profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.NewStore()
		if err != nil {
			return err
		}
		if err := store.SetCurrent(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Switched to profile '%s'\n", color.GreenString("✓"), color.CyanString(args[0]))
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show profile details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.NewStore()
		if err != nil {
			return err
		}

		name := ""
		if len(args) > 0 {
			name = args[0]
		} else {
			name, err = store.CurrentName()
			if err != nil {
				return err
			}
		}

		p, err := store.Load(name)
		if err != nil {
			return err
		}

		dim := color.New(color.Faint)
		fmt.Println()
		fmt.Println(color.New(color.Bold, color.FgCyan).Sprintf("Profile: %s", p.Name))
		fmt.Println(color.CyanString(strings.Repeat("━", 40)))

		if p.DefaultLocation != "" {
			fmt.Printf("Default location: %s\n", p.DefaultLocation)
		} else {
			fmt.Printf("Default location: %s\n", dim.Sprint("none"))
		}
		fmt.Printf("Units: %s\n", p.Units)

		fmt.Println()
		fmt.Println("API Keys:")
		fmt.Printf("  Gemini: %s\n", keyStatus(p.APIKeys.Gemini))
		fmt.Printf("  OpenRouter: %s\n", keyStatus(p.APIKeys.OpenRouter))

		if len(p.Favorites) > 0 {
			fmt.Println()
			fmt.Println("Favorites:")
			for _, fav := range p.Favorites {
				fmt.Printf("  • %s\n", fav)
			}
		}

		fmt.Println()
		fmt.Printf("Created: %s\n", dim.Sprint(p.CreatedAt))
		return nil
	},
}

func keyStatus(key string) string {
	if key != "" {
		return color.GreenString("configured ✓")
	}
	return color.New(color.Faint).Sprint("not set")
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.NewStore()
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Profile '%s' deleted\n", color.GreenString("✓"), args[0])
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a profile value (gemini_key, openrouter_key, default_location, units)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.NewStore()
		if err != nil {
			return err
		}
		name, err := store.CurrentName()
		if err != nil {
			return err
		}
		p, err := store.Load(name)
		if err != nil {
			return err
		}

		field, value := args[0], args[1]
		if err := p.Update(field, value); err != nil {
			return err
		}
		if err := store.Save(p); err != nil {
			return err
		}

		display := value
		if strings.Contains(field, "key") && len(value) > 8 {
			display = value[:8] + "..."
		}
		fmt.Printf("%s Set %s = %s\n", color.GreenString("✓"), color.CyanString(field), display)
		return nil
	},
}

var profileAddFavoriteCmd = &cobra.Command{
	Use:   "add-favorite <location>",
	Short: "Add a favorite location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCurrentProfile(func(p *profile.Profile) error {
			p.AddFavorite(args[0])
			fmt.Printf("%s Added '%s' to favorites\n", color.GreenString("✓"), color.CyanString(args[0]))
			return nil
		})
	},
}

var profileRemoveFavoriteCmd = &cobra.Command{
	Use:   "remove-favorite <location>",
	Short: "Remove a favorite location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCurrentProfile(func(p *profile.Profile) error {
			p.RemoveFavorite(args[0])
			fmt.Printf("%s Removed '%s' from favorites\n", color.GreenString("✓"), args[0])
			return nil
		})
	},
}

// withCurrentProfile loads the active profile, applies fn, and saves.
func withCurrentProfile(fn func(*profile.Profile) error) error {
	store, err := profile.NewStore()
	if err != nil {
		return err
	}
	name, err := store.CurrentName()
	if err != nil {
		return err
	}
	p, err := store.Load(name)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return store.Save(p)
}

func init() {
	profileCmd.AddCommand(
		profileCreateCmd,
		profileListCmd,
		profileSwitchCmd,
		profileShowCmd,
		profileDeleteCmd,
		profileSetCmd,
		profileAddFavoriteCmd,
		profileRemoveFavoriteCmd,
	)
	rootCmd.AddCommand(profileCmd)
}
