// Command seed loads projects and testimonials from a YAML file into the
// configured store, and exports the current collections in the same format.
package main

import (
	"context"
	"fmt"
	"os"

	"portfolio/application/commands"
	"portfolio/application/services"
	"portfolio/infrastructure/config"
	"portfolio/infrastructure/di"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "load or export portfolio content",
	}

	app.Commands = []*cli.Command{
		{
			Name:      "load",
			Usage:     "create every record in a seed file",
			ArgsUsage: "<file.yaml>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "skip-existing",
					Usage: "skip records whose title or name is already stored",
				},
			},
			Action: runLoad,
		},
		{
			Name:   "export",
			Usage:  "write the stored collections to stdout as YAML",
			Action: runExport,
		},
	}
	app.RunAndExitOnError()
}

func initContainer(ctx context.Context) (*di.Container, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return di.InitializeContainer(ctx, cfg)
}

func runLoad(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return cli.Exit("expected exactly one seed file", 1)
	}

	raw, err := os.ReadFile(cctx.Args().First())
	if err != nil {
		return err
	}
	file, err := parseSeedFile(raw)
	if err != nil {
		return err
	}

	container, cleanup, err := initContainer(cctx.Context)
	if err != nil {
		return err
	}
	defer cleanup()

	loader := &seeder{
		projects:     container.Projects,
		testimonials: container.Testimonials,
		skipExisting: cctx.Bool("skip-existing"),
		logger:       container.Logger,
	}
	created, err := loader.Load(cctx.Context, file)
	if err != nil {
		return err
	}

	container.Logger.Info("Seed complete", zap.Int("created", created))
	return nil
}

func runExport(cctx *cli.Context) error {
	container, cleanup, err := initContainer(cctx.Context)
	if err != nil {
		return err
	}
	defer cleanup()

	file, err := exportSeedFile(cctx.Context, container.Projects, container.Testimonials)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(file)
}

// seedFile is the on-disk seed format
type seedFile struct {
	Projects     []commands.CreateProjectCommand     `yaml:"projects"`
	Testimonials []commands.CreateTestimonialCommand `yaml:"testimonials"`
}

func parseSeedFile(raw []byte) (*seedFile, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	for i, p := range file.Projects {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
	}
	for i, t := range file.Testimonials {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("testimonial %d: %w", i, err)
		}
	}
	return &file, nil
}

type seeder struct {
	projects     *services.ProjectService
	testimonials *services.TestimonialService
	skipExisting bool
	logger       *zap.Logger
}

// Load creates the records in file order, so later entries come out newer
func (s *seeder) Load(ctx context.Context, file *seedFile) (int, error) {
	existingTitles := map[string]bool{}
	existingNames := map[string]bool{}
	if s.skipExisting {
		projects, err := s.projects.List(ctx, false)
		if err != nil {
			return 0, err
		}
		for _, p := range projects {
			existingTitles[p.Title] = true
		}
		testimonials, err := s.testimonials.List(ctx, false)
		if err != nil {
			return 0, err
		}
		for _, t := range testimonials {
			existingNames[t.Name] = true
		}
	}

	created := 0
	for _, cmd := range file.Projects {
		if existingTitles[cmd.Title] {
			s.logger.Info("Skipping existing project", zap.String("title", cmd.Title))
			continue
		}
		if _, err := s.projects.Create(ctx, cmd); err != nil {
			return created, fmt.Errorf("failed to create project %q: %w", cmd.Title, err)
		}
		created++
	}
	for _, cmd := range file.Testimonials {
		if existingNames[cmd.Name] {
			s.logger.Info("Skipping existing testimonial", zap.String("name", cmd.Name))
			continue
		}
		if _, err := s.testimonials.Create(ctx, cmd); err != nil {
			return created, fmt.Errorf("failed to create testimonial %q: %w", cmd.Name, err)
		}
		created++
	}
	return created, nil
}

// exportSeedFile lists oldest first so a reload keeps the same order
func exportSeedFile(ctx context.Context, projects *services.ProjectService, testimonials *services.TestimonialService) (*seedFile, error) {
	file := &seedFile{}

	ps, err := projects.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := len(ps) - 1; i >= 0; i-- {
		file.Projects = append(file.Projects, commands.ProjectCommandFromContent(ps[i].ProjectContent))
	}

	ts, err := testimonials.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := len(ts) - 1; i >= 0; i-- {
		file.Testimonials = append(file.Testimonials, commands.TestimonialCommandFromContent(ts[i].TestimonialContent))
	}
	return file, nil
}
