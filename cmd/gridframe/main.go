package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/gridframe/pkg/logging"
	"github.com/dd0wney/gridframe/pkg/pipeline"
	"github.com/dd0wney/gridframe/pkg/validation"
)

// sceneFile is the on-disk scene format: an optional model name plus the
// raw segment and polygon lists.
type sceneFile struct {
	Name                    string `yaml:"name"`
	validation.SceneRequest `yaml:",inline"`
}

func main() {
	scenePath := flag.String("scene", "", "Scene YAML file (required)")
	outPath := flag.String("out", "model.json", "Output model document")
	configPath := flag.String("config", "", "Pipeline config YAML (optional)")
	useSnappy := flag.Bool("snappy", false, "Compress the output document")
	strict := flag.Bool("strict", false, "Abort on the first structural violation")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "❌ -scene is required")
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.DefaultLogger()

	scene, err := loadScene(*scenePath)
	if err != nil {
		fail(logger, "load scene", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail(logger, "load config", err)
	}
	cfg.Strict = cfg.Strict || *strict

	p, err := pipeline.New(cfg, pipeline.WithLogger(logger))
	if err != nil {
		fail(logger, "configure pipeline", err)
	}

	m, res, err := p.Build(scene)
	if err != nil {
		fail(logger, "build model", err)
	}
	printSummary(res)

	data, err := encode(m.Document(), *useSnappy)
	if err != nil {
		fail(logger, "encode document", err)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fail(logger, "write output", err)
	}
	fmt.Printf("✅ Model written to %s (%d bytes)\n", *outPath, len(data))
}

func loadScene(path string) (pipeline.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Scene{}, err
	}
	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return pipeline.Scene{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return pipeline.SceneFromRequest(sf.Name, &sf.SceneRequest)
}

func loadConfig(path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func encode(doc interface {
	Encode() ([]byte, error)
	EncodeSnappy() ([]byte, error)
}, compressed bool) ([]byte, error) {
	if compressed {
		return doc.EncodeSnappy()
	}
	return doc.Encode()
}

func printSummary(res *pipeline.Result) {
	fmt.Printf("📊 Build summary\n")
	fmt.Printf("   Vertices: %d  Edges: %d  Faces: %d  Cells: %d  Levels: %d\n",
		res.Vertices, res.Edges, res.Faces, res.Cells, res.Levels)

	kinds := make([]string, 0, len(res.ElementsByKind))
	for k := range res.ElementsByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("   %s: %d\n", k, res.ElementsByKind[k])
	}
	fmt.Printf("   Interactions: %d\n", res.Interactions)

	for _, w := range res.Warnings {
		fmt.Printf("⚠️  %s: %s\n", w.Kind, w.Message)
	}
	for _, s := range res.Skipped {
		fmt.Printf("⚠️  skipped %s: %s\n", s.Member, s.Reason)
	}
}

func fail(logger logging.Logger, op string, err error) {
	logger.Error(op+" failed", logging.Error(err))
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", op, err)
	os.Exit(1)
}
