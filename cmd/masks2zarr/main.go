package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"masks2zarr/internal/models"
	"masks2zarr/pkg/config"
	"masks2zarr/pkg/masks"
	"masks2zarr/pkg/visualization"
	"masks2zarr/pkg/zarr"
)

func main() {
	// Parse command line arguments
	input := flag.String("input", "", "Annotation export JSON file with the image ROIs")
	output := flag.String("out", "", "Output zarr directory (default: <image-id>.zarr)")
	style := flag.String("style", "6d", "Output style: labeled, split or 6d")
	labelBits := flag.Int("label-bits", 64, "Label bit depth: 1, 8, 16, 32 or 64")
	labelPath := flag.String("label-path", masks.DefaultLabelPath, "Group path the label arrays are written under")
	labelName := flag.String("label-name", "0", "Array name for labeled/6d output")
	labelMap := flag.String("label-map", "", "Optional label map file (source_id,name,roi_id per line)")
	sourceImage := flag.String("source-image", "", "Source image link to attach instead of the enclosing zarr")
	configPath := flag.String("config", "masks2zarr.yaml", "Optional YAML configuration file")
	preview := flag.String("preview", "", "Optional PNG path for a preview of the first written plane")
	flag.Parse()

	// Validate inputs
	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	outputStyle, err := masks.ParseStyle(*style)
	if err != nil {
		log.Fatalf("Invalid style: %v", err)
	}

	dtype, adjusted, err := masks.SelectDtype(*labelBits, outputStyle)
	if err != nil {
		log.Fatalf("Invalid label bits: %v", err)
	}
	if adjusted {
		fmt.Println("Boolean type makes no sense for labeled. Using 64")
	}

	// Load the annotation export
	var source masks.Source = masks.AnnotationFile(*input)
	img, rois, err := source.ImageROIs()
	if err != nil {
		log.Fatalf("Failed to load annotations: %v", err)
	}

	shapeCount := 0
	for _, roi := range rois {
		shapeCount += len(roi.Shapes)
	}
	fmt.Printf("Found %d mask shapes in %d ROIs\n", shapeCount, len(rois))

	if len(rois) == 0 {
		fmt.Println("No masks found on Image")
		return
	}

	outPath := *output
	if outPath == "" {
		outPath = fmt.Sprintf("%d.zarr", img.ID)
	}

	store, err := zarr.NewLocalStore(outPath)
	if err != nil {
		log.Fatalf("Failed to open output store: %v", err)
	}

	compressor, err := cfg.CompressorConfig()
	if err != nil {
		log.Fatalf("Invalid compressor configuration: %v", err)
	}

	saver, err := masks.NewSaver(store, &masks.Params{
		Image:            img,
		Dtype:            dtype,
		Path:             *labelPath,
		Style:            outputStyle,
		SourceImage:      *sourceImage,
		Compressor:       compressor,
		CheckOverlaps:    cfg.CheckOverlaps,
		StrictBitBuffers: cfg.StrictBitBuffers,
		Verbose:          cfg.Verbose,
	})
	if err != nil {
		log.Fatalf("Failed to initialize saver: %v", err)
	}

	var results []*masks.SaveResult
	switch {
	case outputStyle == masks.StyleSplit:
		results, err = saver.SaveSplit(rois)
		if err != nil {
			log.Fatalf("Save failed: %v", err)
		}

	case *labelMap != "":
		groups, err := masks.LoadLabelMap(*labelMap, rois)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", *labelMap, err)
		}
		for _, group := range groups {
			fmt.Printf("Label map: %s (count: %d)\n", group.Name, len(group.Objects))
			res, err := saver.Save(group.Objects, group.Name)
			if err != nil {
				log.Fatalf("Save failed for %q: %v", group.Name, err)
			}
			results = append(results, res)
		}

	default:
		objects := make([][]models.MaskShape, len(rois))
		for i, roi := range rois {
			objects[i] = roi.Shapes
		}
		res, err := saver.Save(objects, *labelName)
		if err != nil {
			log.Fatalf("Save failed: %v", err)
		}
		results = append(results, res)
	}

	fmt.Println("\nConversion completed successfully!")
	for _, res := range results {
		fmt.Printf("Array %q:\n", res.Name)
		fmt.Printf("  Shape: %v\n", res.Shape)
		fmt.Printf("  Objects: %d\n", res.Stats.Objects)
		fmt.Printf("  Labeled pixels: %d\n", res.Stats.LabeledPixels)
		fmt.Printf("  Mean object size: %.1f px (stddev %.1f)\n", res.Stats.MeanSize, res.Stats.StdDevSize)
	}

	if *preview != "" && len(results) > 0 {
		res := results[0]
		plane, h, w := res.Plane(make([]int, len(res.Shape)-2)...)
		viewer := visualization.NewViewer(plane, w, h, res.Colors)
		if err := viewer.SavePNG(*preview); err != nil {
			log.Printf("Warning: Failed to save preview: %v", err)
		} else {
			fmt.Printf("Preview saved to: %s\n", *preview)
		}
	}
}
