package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/formulabase/formulactl/internal/formula"
)

// NewManageCommand creates the "manage" command: an interactive menu over
// the formula catalog.
func NewManageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "manage",
		Short: "Interactive formula catalog management",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			conn, repo, err := openRepository(ctx, logger)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close(ctx) }()

			watchSettings(logger)

			m := &manager{repo: repo, in: bufio.NewReader(os.Stdin), out: os.Stdout}
			return m.run(ctx)
		},
	}
}

// manager drives the menu loop. Repository errors are printed and the
// loop continues; only a broken stdin ends the session.
type manager struct {
	repo *formula.Repository
	in   *bufio.Reader
	out  io.Writer
}

func (m *manager) run(ctx context.Context) error {
	total, err := m.repo.Count(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\n🚀 Formula Database Management\n")
	fmt.Fprintf(m.out, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(m.out, "Total formulas: %d\n", total)

	for {
		m.showMenu()
		choice, err := m.readLine("Enter choice: ")
		if err != nil {
			return nil // stdin closed, leave quietly
		}

		switch choice {
		case "1":
			m.listFormulas(ctx)
		case "2":
			m.searchFormulas(ctx)
		case "3":
			m.viewFormula(ctx)
		case "4":
			m.addFormula(ctx)
		case "5":
			m.updateFormula(ctx)
		case "6":
			m.deleteFormula(ctx)
		case "7":
			m.showStatistics(ctx)
		case "8":
			m.listByCategory(ctx)
		case "9":
			m.listByTag(ctx)
		case "0":
			fmt.Fprintf(m.out, "\n👋 Goodbye!\n")
			return nil
		default:
			fmt.Fprintf(m.out, "\n✗ Invalid choice. Please try again.\n")
		}
	}
}

func (m *manager) showMenu() {
	m.header("Formula Database Management")
	fmt.Fprintf(m.out, "\n📋 MENU:\n")
	fmt.Fprintf(m.out, "  1. List all formulas\n")
	fmt.Fprintf(m.out, "  2. Search formulas\n")
	fmt.Fprintf(m.out, "  3. View formula details\n")
	fmt.Fprintf(m.out, "  4. Add new formula\n")
	fmt.Fprintf(m.out, "  5. Update formula\n")
	fmt.Fprintf(m.out, "  6. Delete formula\n")
	fmt.Fprintf(m.out, "  7. Show statistics\n")
	fmt.Fprintf(m.out, "  8. List by category\n")
	fmt.Fprintf(m.out, "  9. List by tag\n")
	fmt.Fprintf(m.out, "  0. Exit\n\n")
}

func (m *manager) listFormulas(ctx context.Context) {
	m.header("All Formulas")
	formulas, err := m.repo.GetAll(ctx, "")
	if err != nil {
		m.printErr(err)
		return
	}
	if len(formulas) == 0 {
		fmt.Fprintf(m.out, "No formulas found.\n")
		return
	}
	for _, f := range formulas {
		fmt.Fprintf(m.out, "\n📐 %s (%s)\n", f.Name, f.FormulaID)
		fmt.Fprintf(m.out, "   Category: %s\n", f.Category)
		fmt.Fprintf(m.out, "   Description: %s\n", f.Description)
		fmt.Fprintf(m.out, "   Variables: %s\n", strings.Join(f.Variables, ", "))
	}
}

func (m *manager) searchFormulas(ctx context.Context) {
	m.header("Search Formulas")
	term, err := m.readLine("\n🔍 Enter search term: ")
	if err != nil {
		return
	}
	if term == "" {
		fmt.Fprintf(m.out, "Search term cannot be empty.\n")
		return
	}
	formulas, err := m.repo.Search(ctx, term)
	if err != nil {
		m.printErr(err)
		return
	}
	if len(formulas) == 0 {
		fmt.Fprintf(m.out, "\nNo formulas found matching %q.\n", term)
		return
	}
	fmt.Fprintf(m.out, "\n✓ Found %d formula(s):\n", len(formulas))
	m.printBrief(formulas)
}

func (m *manager) viewFormula(ctx context.Context) {
	m.header("View Formula Details")
	id, err := m.readLine("\n📋 Enter formula ID: ")
	if err != nil {
		return
	}
	f, err := m.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, formula.ErrNotFound) {
			fmt.Fprintf(m.out, "\n✗ Formula %q not found.\n", id)
		} else {
			m.printErr(err)
		}
		return
	}

	m.header("📐 " + f.Name)
	fmt.Fprintf(m.out, "\nID: %s\n", f.FormulaID)
	fmt.Fprintf(m.out, "Description: %s\n", f.Description)
	fmt.Fprintf(m.out, "Equation: %s\n", f.Equation)
	fmt.Fprintf(m.out, "Category: %s\n", f.Category)
	fmt.Fprintf(m.out, "Tags: %s\n", strings.Join(f.Tags, ", "))
	if len(f.VariableDetails) > 0 {
		fmt.Fprintf(m.out, "\nVariables:\n")
		for _, v := range f.VariableDetails {
			unit := v.Unit
			if unit == "" {
				unit = "N/A"
			}
			desc := v.Description
			if desc == "" {
				desc = "N/A"
			}
			fmt.Fprintf(m.out, "  • %s: %s [%s]\n", v.Name, desc, unit)
		}
	}
	fmt.Fprintf(m.out, "\nCreated: %s\n", f.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(m.out, "Updated: %s\n", f.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func (m *manager) addFormula(ctx context.Context) {
	m.header("Add New Formula")

	id, err := m.readLine("\n📋 Formula ID (e.g. 'ohms_law'): ")
	if err != nil {
		return
	}
	name, err := m.readLine("📝 Name: ")
	if err != nil {
		return
	}
	description, err := m.readLine("📄 Description: ")
	if err != nil {
		return
	}
	equation, err := m.readLine("🧮 Equation: ")
	if err != nil {
		return
	}
	variablesLine, err := m.readLine("📊 Variables (comma-separated): ")
	if err != nil {
		return
	}
	category, err := m.readLine("📁 Category: ")
	if err != nil {
		return
	}
	tagsLine, err := m.readLine("🏷  Tags (comma-separated): ")
	if err != nil {
		return
	}

	f := &formula.Formula{
		FormulaID:   id,
		Name:        name,
		Description: description,
		Equation:    equation,
		Variables:   splitList(variablesLine),
		Category:    category,
		Tags:        splitList(tagsLine),
	}
	if err := m.repo.Create(ctx, f); err != nil {
		fmt.Fprintf(m.out, "\n✗ Error adding formula: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "\n✓ Successfully added formula %q!\n", id)
}

func (m *manager) updateFormula(ctx context.Context) {
	m.header("Update Formula")
	id, err := m.readLine("\n📋 Formula ID to update: ")
	if err != nil {
		return
	}
	f, err := m.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, formula.ErrNotFound) {
			fmt.Fprintf(m.out, "\n✗ Formula %q not found.\n", id)
		} else {
			m.printErr(err)
		}
		return
	}

	fmt.Fprintf(m.out, "\nCurrent formula: %s\n", f.Name)
	fmt.Fprintf(m.out, "\nWhat would you like to update?\n")
	fmt.Fprintf(m.out, "1. Description\n2. Equation\n3. Category\n4. Add tags\n5. Remove tags\n")
	choice, err := m.readLine("\nChoice: ")
	if err != nil {
		return
	}

	switch choice {
	case "1":
		value, rerr := m.readLine("New description: ")
		if rerr != nil {
			return
		}
		err = m.repo.Update(ctx, id, bson.M{"description": value})
	case "2":
		value, rerr := m.readLine("New equation: ")
		if rerr != nil {
			return
		}
		err = m.repo.Update(ctx, id, bson.M{"equation": value})
	case "3":
		value, rerr := m.readLine("New category: ")
		if rerr != nil {
			return
		}
		err = m.repo.Update(ctx, id, bson.M{"category": value})
	case "4":
		value, rerr := m.readLine("Tags to add (comma-separated): ")
		if rerr != nil {
			return
		}
		err = m.repo.AddTags(ctx, id, splitList(value))
	case "5":
		value, rerr := m.readLine("Tags to remove (comma-separated): ")
		if rerr != nil {
			return
		}
		err = m.repo.RemoveTags(ctx, id, splitList(value))
	default:
		fmt.Fprintf(m.out, "Invalid choice.\n")
		return
	}

	if err != nil {
		fmt.Fprintf(m.out, "\n✗ Error updating formula: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "✓ Formula updated!\n")
}

func (m *manager) deleteFormula(ctx context.Context) {
	m.header("Delete Formula")
	id, err := m.readLine("\n📋 Formula ID to delete: ")
	if err != nil {
		return
	}
	f, err := m.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, formula.ErrNotFound) {
			fmt.Fprintf(m.out, "\n✗ Formula %q not found.\n", id)
		} else {
			m.printErr(err)
		}
		return
	}

	fmt.Fprintf(m.out, "\n⚠  You are about to delete: %s\n", f.Name)
	confirm, err := m.readLine("Type 'DELETE' to confirm: ")
	if err != nil {
		return
	}
	if confirm != "DELETE" {
		fmt.Fprintf(m.out, "\n✗ Deletion cancelled.\n")
		return
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintf(m.out, "\n✓ Formula %q deleted.\n", id)
}

func (m *manager) showStatistics(ctx context.Context) {
	m.header("Database Statistics")
	stats, err := gatherStats(ctx, m.repo)
	if err != nil {
		m.printErr(err)
		return
	}
	printStats(m.out, stats)
}

func (m *manager) listByCategory(ctx context.Context) {
	m.header("List by Category")
	categories, err := m.repo.Categories(ctx)
	if err != nil {
		m.printErr(err)
		return
	}
	sort.Strings(categories)
	fmt.Fprintf(m.out, "\nAvailable categories:\n")
	for i, cat := range categories {
		n, _ := m.repo.Count(ctx, cat)
		fmt.Fprintf(m.out, "  %d. %s (%d)\n", i+1, cat, n)
	}

	category, err := m.readLine("\n📁 Enter category name: ")
	if err != nil {
		return
	}
	formulas, err := m.repo.GetAll(ctx, category)
	if err != nil {
		m.printErr(err)
		return
	}
	if len(formulas) == 0 {
		fmt.Fprintf(m.out, "\nNo formulas found in category %q.\n", category)
		return
	}
	fmt.Fprintf(m.out, "\n✓ %d formula(s) in %q:\n", len(formulas), category)
	m.printBrief(formulas)
}

func (m *manager) listByTag(ctx context.Context) {
	m.header("List by Tag")
	tags, err := m.repo.Tags(ctx)
	if err != nil {
		m.printErr(err)
		return
	}
	sort.Strings(tags)
	fmt.Fprintf(m.out, "\nAvailable tags: %s\n", strings.Join(tags, ", "))

	tag, err := m.readLine("\n🏷  Enter tag: ")
	if err != nil {
		return
	}
	formulas, err := m.repo.GetByTag(ctx, tag)
	if err != nil {
		m.printErr(err)
		return
	}
	if len(formulas) == 0 {
		fmt.Fprintf(m.out, "\nNo formulas found with tag %q.\n", tag)
		return
	}
	fmt.Fprintf(m.out, "\n✓ %d formula(s) with tag %q:\n", len(formulas), tag)
	m.printBrief(formulas)
}

func (m *manager) printBrief(formulas []formula.Formula) {
	for _, f := range formulas {
		fmt.Fprintf(m.out, "\n  • %s (%s)\n", f.Name, f.FormulaID)
		fmt.Fprintf(m.out, "    %s\n", f.Description)
	}
}

func (m *manager) header(title string) {
	fmt.Fprintf(m.out, "\n%s\n%s\n%s\n", strings.Repeat("=", 60), title, strings.Repeat("=", 60))
}

func (m *manager) printErr(err error) {
	fmt.Fprintf(m.out, "\n✗ Error: %v\n", err)
}

func (m *manager) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// splitList parses a comma-separated input line, dropping empty entries.
func splitList(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
