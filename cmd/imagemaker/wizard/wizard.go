// Package wizard provides interactive parameter entry for imagemaker.
package wizard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/quicktools/imagemaker/internal/imagegen"
	"github.com/quicktools/imagemaker/internal/maker"
	"github.com/quicktools/imagemaker/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginBottom(1)
)

// Run collects a full parameter set through a form, runs the pipeline and
// optionally saves the configuration for later --config runs.
func Run() error {
	fmt.Println(titleStyle.Render("imagemaker wizard"))
	fmt.Println(subtitleStyle.Render("Synthesize a uniform raster image"))

	var (
		dimension     = 3
		scalarType    = "uchar"
		componentsStr = "1"
		sizeStr       string
		spacingStr    string
		originStr     string
		directionStr  string
		fillStr       = "0"
		outputPath    string
		configPath    string
		saveConfig    bool
	)

	scalarOptions := make([]huh.Option[string], 0, 10)
	for _, st := range imagegen.AllScalarTypes() {
		scalarOptions = append(scalarOptions, huh.NewOption(st.String(), st.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Dimension").
				Options(
					huh.NewOption("1D", 1),
					huh.NewOption("2D", 2),
					huh.NewOption("3D", 3),
				).
				Value(&dimension),

			huh.NewSelect[string]().
				Title("Scalar Type").
				Options(scalarOptions...).
				Value(&scalarType),

			huh.NewInput().
				Title("Components per Pixel").
				Description("1 = scalar pixel, >1 = vector pixel").
				Value(&componentsStr).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Size").
				Placeholder("e.g., 10,10,10").
				Description("Pixel counts, one per axis").
				Value(&sizeStr).
				Validate(validateIntList),

			huh.NewInput().
				Title("Spacing").
				Placeholder("empty = 1 per axis").
				Value(&spacingStr).
				Validate(validateFloatList),

			huh.NewInput().
				Title("Origin").
				Placeholder("empty = 0 per axis").
				Value(&originStr).
				Validate(validateFloatList),

			huh.NewInput().
				Title("Direction").
				Placeholder("empty = identity").
				Description("Row-major flattened orientation matrix").
				Value(&directionStr).
				Validate(validateFloatList),

			huh.NewInput().
				Title("Fill Values").
				Description("Cycled across components").
				Value(&fillStr).
				Validate(validateFloatList),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output Path").
				Placeholder("e.g., volume.mha").
				Description("Extension selects the codec: .mha .mhd .dcm .png .tif .bmp").
				Value(&outputPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("output path is required")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Save configuration?").
				Value(&saveConfig),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	components, _ := strconv.Atoi(componentsStr)
	size, _ := util.ParseInts(sizeStr)
	spacing, _ := util.ParseFloats(spacingStr)
	origin, _ := util.ParseFloats(originStr)
	direction, _ := util.ParseFloats(directionStr)
	fill, _ := util.ParseFloats(fillStr)

	params := imagegen.Params{
		Dimension:  dimension,
		Components: components,
		ScalarType: scalarType,
		Size:       size,
		Spacing:    spacing,
		Origin:     origin,
		Direction:  direction,
		FillValues: fill,
		OutputPath: outputPath,
	}

	if saveConfig {
		pathForm := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Config Path").
				Placeholder("imagemaker.yaml").
				Value(&configPath),
		))
		if err := pathForm.Run(); err != nil {
			return err
		}
	}

	if err := maker.Make(params, maker.Options{}); err != nil {
		return err
	}

	if saveConfig && configPath != "" {
		params.ApplyDefaults()
		if err := imagegen.SaveParams(params, configPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("Configuration saved to %s\n", configPath)
	}

	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateIntList(s string) error {
	if _, err := util.ParseInts(s); err != nil {
		return err
	}
	return nil
}

func validateFloatList(s string) error {
	if _, err := util.ParseFloats(s); err != nil {
		return err
	}
	return nil
}
