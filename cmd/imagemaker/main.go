package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quicktools/imagemaker/cmd/imagemaker/wizard"
	"github.com/quicktools/imagemaker/internal/imagegen"
	"github.com/quicktools/imagemaker/internal/maker"
	"github.com/quicktools/imagemaker/internal/util"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Check for wizard subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		if err := wizard.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Define command-line flags
	dimension := flag.Int("dimension", 3, "Image dimension: 1, 2 or 3 (values outside that set fall back to 3)")
	components := flag.Int("components", 1, "Components per pixel (1 = scalar pixel, >1 = vector pixel)")
	scalarType := flag.String("scalar-type", "uchar", "Pixel component type: uchar, char, ushort, short, uint, int, ulong, long, float, double")
	size := flag.String("size", "", "Per-axis pixel counts, comma-separated (e.g. '10,10,10') (required)")
	spacing := flag.String("spacing", "", "Per-axis physical step, comma-separated (default: all 1)")
	origin := flag.String("origin", "", "Physical position of index zero, comma-separated (default: all 0)")
	direction := flag.String("direction", "", "Orientation matrix, row-major flattened (default: identity)")
	fill := flag.String("fill", "0", "Fill values, cycled across components (e.g. '255' or '10,20')")
	output := flag.String("output", "", "Destination file path; the extension selects the codec (required)")

	configFile := flag.String("config", "", "Load parameters from a YAML file")
	saveConfig := flag.String("save-config", "", "Save the resolved parameters to a YAML file")
	quiet := flag.Bool("quiet", false, "Suppress progress output")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("imagemaker %s\n", version)
		os.Exit(0)
	}

	// Show help
	if *help {
		printHelp()
		os.Exit(0)
	}

	var params imagegen.Params

	if *configFile != "" {
		loaded, err := imagegen.LoadParams(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		params = loaded
	} else {
		sizeVals, err := util.ParseInts(*size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --size: %v\n", err)
			os.Exit(1)
		}
		spacingVals, err := util.ParseFloats(*spacing)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --spacing: %v\n", err)
			os.Exit(1)
		}
		originVals, err := util.ParseFloats(*origin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --origin: %v\n", err)
			os.Exit(1)
		}
		directionVals, err := util.ParseFloats(*direction)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --direction: %v\n", err)
			os.Exit(1)
		}
		fillVals, err := util.ParseFloats(*fill)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --fill: %v\n", err)
			os.Exit(1)
		}

		params = imagegen.Params{
			Dimension:  *dimension,
			Components: *components,
			ScalarType: *scalarType,
			Size:       sizeVals,
			Spacing:    spacingVals,
			Origin:     originVals,
			Direction:  directionVals,
			FillValues: fillVals,
			OutputPath: *output,
		}
	}

	// Validate required arguments before entering the pipeline. A config
	// file may omit components entirely; treat that like the flag default.
	if params.Components == 0 {
		params.Components = 1
	}
	if len(params.Size) == 0 {
		fmt.Fprintf(os.Stderr, "Error: --size is required\n")
		printUsage()
		os.Exit(1)
	}
	if params.OutputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --output is required\n")
		printUsage()
		os.Exit(1)
	}
	if params.Components < 1 {
		fmt.Fprintf(os.Stderr, "Error: --components must be >= 1\n")
		os.Exit(1)
	}

	if err := maker.Make(params, maker.Options{Quiet: *quiet}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Save config if requested
	if *saveConfig != "" {
		params.ApplyDefaults()
		if err := imagegen.SaveParams(params, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else if !*quiet {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  imagemaker --size <N,N,...> --output <FILE> [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("imagemaker")
	fmt.Println("==========")
	fmt.Println()
	fmt.Println("Synthesize a blank N-dimensional raster image with a uniform fill")
	fmt.Println("pattern and write it through the codec matching the output extension.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  imagemaker --size <N,N,...> --output <FILE> [options]")
	fmt.Println("  imagemaker wizard")
	fmt.Println()
	fmt.Println("Required arguments:")
	fmt.Println("  --size <LIST>         Per-axis pixel counts, one per dimension")
	fmt.Println("  --output <FILE>       Destination path (.mha, .mhd, .dcm, .png, .tif, .bmp)")
	fmt.Println()
	fmt.Println("Optional arguments:")
	fmt.Println("  --dimension <N>       1, 2 or 3 (default: 3; other values fall back to 3)")
	fmt.Println("  --components <N>      Components per pixel (default: 1)")
	fmt.Println("  --scalar-type <T>     uchar, char, ushort, short, uint, int, ulong,")
	fmt.Println("                        long, float, double (default: uchar)")
	fmt.Println("  --spacing <LIST>      Physical step per axis (default: 1 per axis)")
	fmt.Println("  --origin <LIST>       Physical position of index zero (default: 0 per axis)")
	fmt.Println("  --direction <LIST>    Row-major flattened orientation matrix (default: identity)")
	fmt.Println("  --fill <LIST>         Fill values, cycled across components (default: 0)")
	fmt.Println("  --config <FILE>       Load all parameters from a YAML file")
	fmt.Println("  --save-config <FILE>  Save the resolved parameters to a YAML file")
	fmt.Println("  --quiet               Suppress progress output")
	fmt.Println("  --help                Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # 3D 10x10x10 volume of 8-bit 255s, ITK MetaImage format")
	fmt.Println("  imagemaker --size 10,10,10 --fill 255 --output white.mha")
	fmt.Println()
	fmt.Println("  # 2D 16-bit grayscale PNG with physical spacing 0.5mm")
	fmt.Println("  imagemaker --dimension 2 --scalar-type ushort --size 512,512 \\")
	fmt.Println("             --spacing 0.5,0.5 --fill 32000 --output gray.png")
	fmt.Println()
	fmt.Println("  # RGB fill pattern cycled over 3 components")
	fmt.Println("  imagemaker --dimension 2 --components 3 --size 64,64 \\")
	fmt.Println("             --fill 200,100 --output pattern.dcm")
	fmt.Println()
	fmt.Println("  # Interactive parameter entry")
	fmt.Println("  imagemaker wizard")
}
