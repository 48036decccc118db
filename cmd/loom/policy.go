package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/policy"
)

var policyOut string

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Combine and split role-scoped policy documents",
}

var policyCombineCmd = &cobra.Command{
	Use:   "combine <planner-file> <worker-file>",
	Short: "Merge planner and worker policies into one document",
	Long: `Merge two role-scoped policy files into one document.

When both files hold the same text the output is that text unchanged: one
shared policy serves both roles and no markers are emitted. Otherwise the
sections are written under their role markers.`,
	Args: cobra.ExactArgs(2),
	RunE: runPolicyCombine,
}

var policySplitCmd = &cobra.Command{
	Use:   "split <combined-file>",
	Short: "Recover role sections from a combined policy document",
	Args:  cobra.ExactArgs(1),
	RunE:  runPolicySplit,
}

func init() {
	policyCombineCmd.Flags().StringVarP(&policyOut, "out", "o", "", "Write the combined document to this file (default: stdout)")
	policyCmd.AddCommand(policyCombineCmd)
	policyCmd.AddCommand(policySplitCmd)
}

func runPolicyCombine(cmd *cobra.Command, args []string) error {
	planner, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read planner policy: %w", err)
	}
	worker, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read worker policy: %w", err)
	}

	combined, split := policy.Combine(string(planner), string(worker))
	if policyOut != "" {
		if err := os.WriteFile(policyOut, []byte(combined), 0644); err != nil {
			return fmt.Errorf("write combined policy: %w", err)
		}
		if split {
			fmt.Printf("Wrote combined document with role sections to %s\n", policyOut)
		} else {
			fmt.Printf("Policies are identical; wrote the shared text to %s\n", policyOut)
		}
		return nil
	}
	fmt.Print(combined)
	return nil
}

func runPolicySplit(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read policy document: %w", err)
	}

	sections, ok := policy.Split(string(text))
	if !ok {
		fmt.Println("Not a combined document: this is a plain shared policy.")
		return nil
	}

	for _, role := range []string{policy.RolePlanner, policy.RoleWorker} {
		section, present := sections[role]
		if !present {
			continue
		}
		fmt.Printf("=== %s ===\n%s\n\n", role, section)
	}
	return nil
}
