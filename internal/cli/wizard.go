package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/cli/formatter"
	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// wizardAnswers holds the raw form values. Blank counts stay absent from
// the document.
type wizardAnswers struct {
	ProjectName    string
	SquareFootage  string
	Tier           string
	Bedrooms       string
	PrimaryBaths   string
	SecondaryBaths string
	PowderRooms    string
}

type saveAnswer struct {
	Save bool
	Name string
}

func (w wizardAnswers) document() (*importer.ProjectDocument, error) {
	sqft, err := strconv.ParseFloat(strings.TrimSpace(w.SquareFootage), 64)
	if err != nil {
		return nil, fmt.Errorf("square footage %q is not a number", w.SquareFootage)
	}
	doc := &importer.ProjectDocument{
		ProjectName:   strings.TrimSpace(w.ProjectName),
		SquareFootage: &sqft,
	}
	if w.Tier != "" {
		tier := w.Tier
		doc.GlobalTier = &tier
	}

	counts := []struct {
		raw string
		dst **int
	}{
		{w.Bedrooms, &doc.BedroomCount},
		{w.PrimaryBaths, &doc.PrimaryBathCount},
		{w.SecondaryBaths, &doc.SecondaryBathCount},
		{w.PowderRooms, &doc.PowderRoomCount},
	}
	for _, c := range counts {
		raw := strings.TrimSpace(c.raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("count %q is not a whole number", c.raw)
		}
		*c.dst = &n
	}
	return doc, nil
}

func newWizardCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Describe a project interactively and estimate it",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !s.deps.IsInteractive() {
				return errors.New("wizard needs an interactive terminal; use \"buildcost estimate FILE\" instead")
			}
			return nil
		},
		RunE: s.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			var answers wizardAnswers
			if err := s.promptProject(&answers); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(out, formatter.Dim("Cancelled."))
					return nil
				}
				return err
			}
			doc, err := answers.document()
			if err != nil {
				return err
			}

			res, err := a.Estimates.Detailed(ctx, doc)
			if err != nil {
				return reportFailure(cmd, err, false)
			}
			fmt.Fprintln(out, formatter.FormatDetailedEstimate(contract.NewDetailedEstimateResponse(res)))

			save := saveAnswer{Name: suggestedName(doc.ProjectName)}
			if err := s.confirmSave(&save); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
			if !save.Save {
				return nil
			}

			saved, err := a.Saved.Save(ctx, save.Name, doc, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render(contract.NewSaveResponse(saved).Message))
			return nil
		}),
	}
}

// suggestedName turns a project name into a saved-estimate name.
func suggestedName(projectName string) string {
	fields := strings.Fields(strings.ToLower(projectName))
	return strings.Join(fields, "-")
}

func askProject(a *wizardAnswers) error {
	tierOptions := []huh.Option[string]{huh.NewOption("Derive from square footage", "")}
	for _, t := range domain.StandardTiers {
		tierOptions = append(tierOptions, huh.NewOption(string(t), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Placeholder("Hillside Residence").
				Value(&a.ProjectName),
			huh.NewInput().
				Title("Square Footage").
				Placeholder("3500").
				Value(&a.SquareFootage).
				Validate(validatePositiveNumber),
			huh.NewSelect[string]().
				Title("Quality Tier").
				Options(tierOptions...).
				Value(&a.Tier),
		),
		huh.NewGroup(
			countInput("Bedrooms", &a.Bedrooms),
			countInput("Primary Baths", &a.PrimaryBaths),
			countInput("Secondary Baths", &a.SecondaryBaths),
			countInput("Powder Rooms", &a.PowderRooms),
		).Description("Leave blank to use the defaults."),
	).WithTheme(buildcostHuhTheme()).WithShowHelp(false).Run()
}

func askSave(a *saveAnswer) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this estimate?").
				Affirmative("Yes").
				Negative("No").
				Value(&a.Save),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Save As").
				Value(&a.Name).
				Validate(domain.ValidateEstimateName),
		).WithHideFunc(func() bool { return !a.Save }),
	).WithTheme(buildcostHuhTheme()).WithShowHelp(false).Run()
}

func countInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("blank for default").
		Value(value).
		Validate(validateNonNegativeInt)
}

func validatePositiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return errors.New("enter a non-negative number")
	}
	return nil
}

func buildcostHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
