package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive weather chat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(color.CyanString("wxstory chat. Ask about the weather; 'exit' to quit."))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(color.New(color.Bold).Sprint("> "))
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			if err := runQuestion(cmd, line); err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
