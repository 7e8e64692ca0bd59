package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/sathishthangasamy/healthcare-product-selector/config"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/app"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
	logpkg "github.com/sathishthangasamy/healthcare-product-selector/internal/logger"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/usecase"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runner carries the services built in Before to the command actions
type runner struct {
	services *app.Services
	logger   *zap.Logger
}

func newApp() *cli.App {
	r := &runner{}

	return &cli.App{
		Name:  "selector",
		Usage: "Find healthcare products and insurance plans from the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:  "products",
				Usage: "Product catalog source (embedded:<name>, file path or URL)",
			},
			&cli.StringFlag{
				Name:  "plans",
				Usage: "Plan catalog source",
			},
			&cli.StringFlag{
				Name:  "plan-types",
				Usage: "Plan type definitions source",
			},
		},
		Before: r.setup,
		After:  r.teardown,
		Commands: []*cli.Command{
			{
				Name:   "products",
				Usage:  "Filter products by symptom, condition, category and age group",
				Action: r.products,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "symptom", Aliases: []string{"s"}, Usage: "Symptom, e.g. fever"},
					&cli.StringFlag{Name: "condition", Aliases: []string{"c"}, Usage: "Health condition, e.g. diabetes"},
					&cli.StringFlag{Name: "category", Usage: "Product category", Value: domain.CategoryAll},
					&cli.StringFlag{Name: "age-group", Aliases: []string{"a"}, Usage: "Child, Adult or Senior"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of results (0 = configured default)"},
				},
			},
			{
				Name:   "plans",
				Usage:  "Filter and rank insurance plans",
				Action: r.plans,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Preferred plan type, e.g. PPO", Value: domain.PlanTypeAny},
					&cli.StringSliceFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Priority to rank by (repeatable)"},
					&cli.StringFlag{Name: "conditions", Aliases: []string{"c"}, Usage: "Comma separated conditions, e.g. diabetes, asthma"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of results (0 = configured default)"},
				},
			},
			{
				Name:      "plan-type",
				Usage:     "Explain a plan type",
				ArgsUsage: "<type>",
				Action:    r.planType,
			},
		},
	}
}

func (r *runner) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.IsSet("products") {
		cfg.Catalog.Products = c.String("products")
	}
	if c.IsSet("plans") {
		cfg.Catalog.Plans = c.String("plans")
	}
	if c.IsSet("plan-types") {
		cfg.Catalog.PlanTypes = c.String("plan-types")
	}

	r.logger, err = logpkg.NewLogger(cfg.Server.Environment, c.String("log-level"))
	if err != nil {
		return err
	}

	r.services = app.Build(c.Context, cfg, r.logger)
	return nil
}

func (r *runner) teardown(*cli.Context) error {
	if r.logger != nil {
		_ = r.logger.Sync()
	}
	return nil
}

func (r *runner) products(c *cli.Context) error {
	query := domain.ProductQuery{
		Symptom:   c.String("symptom"),
		Condition: c.String("condition"),
		Category:  c.String("category"),
		AgeGroup:  domain.AgeGroup(c.String("age-group")),
	}

	result, err := r.services.Products.Search(c.Context, query, c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tCONDITIONS")
	for _, p := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.PriceRange, p.SuitableForConditions)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printFooter(c.App.Writer, result.Count, result.Total, result.Notice)
	return nil
}

func (r *runner) plans(c *cli.Context) error {
	var priorities []domain.Priority
	for _, p := range c.StringSlice("priority") {
		priorities = append(priorities, domain.Priority(strings.TrimSpace(p)))
	}

	query := domain.PlanQuery{
		PreferredType: c.String("type"),
		Priorities:    priorities,
		Conditions:    c.String("conditions"),
	}

	result, err := r.services.Plans.Search(c.Context, query, c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	header := "#\tPLAN\tPROVIDER\tTYPE\tPREMIUM\tDEDUCTIBLE\tOOP MAX\tNETWORK"
	if len(priorities) > 0 {
		header += "\tSCORE"
	}
	fmt.Fprintln(w, header)
	for i, p := range result.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%.0f\t$%.0f\t$%.0f\t%s",
			i+1, p.Name, p.Provider, p.PlanType, p.MonthlyPremium, p.Deductible, p.OutOfPocketMax, p.NetworkSize)
		if len(priorities) > 0 {
			fmt.Fprintf(w, "\t%.1f", usecase.ScorePlan(p, priorities))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printFooter(c.App.Writer, result.Count, result.Total, result.Notice)
	return nil
}

func (r *runner) planType(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.Exit("plan type is required, e.g. selector plan-type HMO", 2)
	}

	def, err := r.services.Plans.PlanType(c.Context, name)
	if errors.Is(err, domain.ErrPlanTypeNotFound) {
		return cli.Exit(fmt.Sprintf("unknown plan type %q", name), 1)
	}
	if err != nil {
		return err
	}

	out := c.App.Writer
	title := def.PlanType
	if def.FullName != "" {
		title = fmt.Sprintf("%s (%s)", def.FullName, def.PlanType)
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, def.Description)
	for _, field := range []struct{ label, value string }{
		{"Pros", def.Pros},
		{"Cons", def.Cons},
		{"Best for", def.BestFor},
	} {
		if field.value != "" {
			fmt.Fprintf(out, "%s: %s\n", field.label, field.value)
		}
	}
	return nil
}

func printFooter(w io.Writer, count, total int, notice string) {
	if notice != "" {
		fmt.Fprintln(w, notice)
		return
	}
	if count < total {
		fmt.Fprintf(w, "Showing %d of %d matches.\n", count, total)
	}
}
