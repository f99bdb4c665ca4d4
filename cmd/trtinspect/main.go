// Command trtinspect loads a serialized TensorRT engine and prints its I/O
// tensor table and build attributes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vivym/tensorrt-go/tensorrt"
)

var (
	libraryPath string
	pluginPaths []string
	logLevel    int
)

var rootCmd = &cobra.Command{
	Use:   "trtinspect <engine-file>",
	Short: "Inspect a serialized TensorRT engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&libraryPath, "lib", "l", "", "Path to the bridge library (default: search the linker path)")
	rootCmd.Flags().StringArrayVarP(&pluginPaths, "plugin", "p", nil, "Plugin library to load before deserialization (repeatable)")
	rootCmd.Flags().IntVar(&logLevel, "level", int(tensorrt.SeverityWarning), "Minimum log severity (0=internal error .. 4=verbose)")
}

func inspect(enginePath string) error {
	minSeverity := tensorrt.Severity(logLevel)
	runtime, err := tensorrt.NewRuntime(&tensorrt.RuntimeConfig{
		LibraryPath: libraryPath,
		Logger:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
		MinSeverity: &minSeverity,
	})
	if err != nil {
		return err
	}
	defer runtime.Close()

	for _, path := range pluginPaths {
		if _, err := runtime.LoadPluginLibrary(path); err != nil {
			return err
		}
	}

	engine, err := runtime.DeserializeFromFile(enginePath)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Printf("Engine: %s\n", engine.Name())
	fmt.Printf("Layers: %d\n", engine.NumLayers())
	fmt.Printf("Optimization profiles: %d\n", engine.NumOptimizationProfiles())
	fmt.Printf("Aux streams: %d\n", engine.NumAuxStreams())
	fmt.Printf("Device memory: %d bytes\n", engine.DeviceMemorySize())
	fmt.Printf("Refittable: %v\n", engine.IsRefittable())
	fmt.Printf("Capability: %d\n", engine.Capability())
	fmt.Printf("Hardware compatibility: %d\n", engine.HardwareCompatibilityLevel())
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tDTYPE\tFORMAT\tSHAPE")
	for _, name := range engine.IOTensorNames() {
		mode, err := engine.TensorIOMode(name)
		if err != nil {
			return err
		}
		dtype, err := engine.TensorDataType(name)
		if err != nil {
			return err
		}
		format, err := engine.TensorFormat(name)
		if err != nil {
			return err
		}
		shape, err := engine.TensorShape(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", name, modeName(mode), dtypeName(dtype), format, shape)
	}
	return w.Flush()
}

func modeName(mode tensorrt.TensorIOMode) string {
	switch mode {
	case tensorrt.TensorIOModeInput:
		return "input"
	case tensorrt.TensorIOModeOutput:
		return "output"
	default:
		return "none"
	}
}

func dtypeName(dtype tensorrt.DataType) string {
	switch dtype {
	case tensorrt.DataTypeFloat:
		return "float32"
	case tensorrt.DataTypeHalf:
		return "float16"
	case tensorrt.DataTypeInt8:
		return "int8"
	case tensorrt.DataTypeInt32:
		return "int32"
	case tensorrt.DataTypeBool:
		return "bool"
	case tensorrt.DataTypeUint8:
		return "uint8"
	case tensorrt.DataTypeFP8:
		return "fp8"
	case tensorrt.DataTypeBF16:
		return "bfloat16"
	case tensorrt.DataTypeInt64:
		return "int64"
	case tensorrt.DataTypeInt4:
		return "int4"
	default:
		return fmt.Sprintf("DataType(%d)", dtype)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
