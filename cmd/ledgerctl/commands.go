package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ventureboard/backend/config"
	"github.com/ventureboard/backend/internal/application/usecase/consolidation"
	"github.com/ventureboard/backend/internal/application/usecase/intercompany"
	"github.com/ventureboard/backend/internal/application/usecase/statement"
	"github.com/ventureboard/backend/internal/infra/db"
	"github.com/ventureboard/backend/internal/infra/dependency"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
)

func commands(a *app) []subcommands.Command {
	return []subcommands.Command{
		&recalcCmd{app: a},
		&consolidateCmd{app: a},
		&maintenanceCmd{app: a, name: "ic-normalize", synopsis: "rewrite intercompany rows to the signed transfer_in/transfer_out convention", run: runNormalize},
		&maintenanceCmd{app: a, name: "ic-dedupe", synopsis: "remove duplicate intercompany transfers", run: runDeduplicate},
		&maintenanceCmd{app: a, name: "ic-migrate", synopsis: "fill structured direction and counterparty fields from descriptions", run: runMigrate},
		&mirrorCmd{app: a},
		&schemaCmd{},
	}
}

type schemaCmd struct{}

func (*schemaCmd) Name() string     { return "schema" }
func (*schemaCmd) Synopsis() string { return "create or update the ledger tables" }
func (*schemaCmd) Usage() string {
	return `ledgerctl schema

  Runs the ledger auto-migration against DATABASE_URL.
`
}

func (*schemaCmd) SetFlags(*flag.FlagSet) {}

func (*schemaCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	database, err := db.NewPostgresConnection(&config.Load().Database)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = database.Close() }()

	if err := database.MigrateLedger(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// fail prints err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type recalcCmd struct {
	app     *app
	owner   string
	company string
	from    string
	to      string
}

func (*recalcCmd) Name() string     { return "recalc" }
func (*recalcCmd) Synopsis() string { return "recalculate and store the monthly statements of a company" }
func (*recalcCmd) Usage() string {
	return `ledgerctl recalc -owner <id> -company <id> [-from YYYY-MM-DD] [-to YYYY-MM-DD]

  Folds the company ledger into monthly statements and replaces the stored copy.
`
}

func (c *recalcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner user id.")
	f.StringVar(&c.company, "company", "", "Company id.")
	f.StringVar(&c.from, "from", "", "First day to include (defaults to the first transaction).")
	f.StringVar(&c.to, "to", "", "Last day to include (defaults to the last transaction).")
}

func (c *recalcCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ownerID, err := parseID("owner", c.owner)
	if err != nil {
		return fail(err)
	}
	companyID, err := parseID("company", c.company)
	if err != nil {
		return fail(err)
	}
	from, err := dto.ParseOptionalDate(c.from)
	if err != nil {
		return fail(fmt.Errorf("invalid -from: %w", err))
	}
	to, err := dto.ParseOptionalDate(c.to)
	if err != nil {
		return fail(fmt.Errorf("invalid -to: %w", err))
	}

	useCases, err := c.app.open()
	if err != nil {
		return fail(err)
	}
	defer c.app.close()

	output, err := useCases.RecalculateStatements.Execute(ctx, statement.RecalculateStatementsInput{
		OwnerID:   ownerID,
		CompanyID: companyID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return fail(err)
	}

	if err := c.app.print(dto.ToRecalculateResponse(output)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type consolidateCmd struct {
	app   *app
	owner string
}

func (*consolidateCmd) Name() string     { return "consolidate" }
func (*consolidateCmd) Synopsis() string { return "consolidate every company of an owner" }
func (*consolidateCmd) Usage() string {
	return `ledgerctl consolidate -owner <id>

  Computes fresh consolidated statements with intercompany eliminations.
  Exits with status 1 when the result does not validate.
`
}

func (c *consolidateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner user id.")
}

func (c *consolidateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ownerID, err := parseID("owner", c.owner)
	if err != nil {
		return fail(err)
	}

	useCases, err := c.app.open()
	if err != nil {
		return fail(err)
	}
	defer c.app.close()

	output, err := useCases.ConsolidatePortfolio.Execute(ctx, consolidation.ConsolidatePortfolioInput{
		OwnerID: ownerID,
		Refresh: true,
	})
	if err != nil {
		return fail(err)
	}

	if err := c.app.print(dto.ToConsolidationResponse(output)); err != nil {
		return fail(err)
	}
	if !output.Result.IsValid {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// maintenanceCmd runs one per-company intercompany pass.
type maintenanceCmd struct {
	app      *app
	name     string
	synopsis string
	run      func(context.Context, *dependency.UseCases, intercompany.CompanyMaintenanceInput) (any, error)

	owner   string
	company string
	apply   bool
}

func (c *maintenanceCmd) Name() string     { return c.name }
func (c *maintenanceCmd) Synopsis() string { return c.synopsis }
func (c *maintenanceCmd) Usage() string {
	return fmt.Sprintf(`ledgerctl %s -owner <id> -company <id> [-apply]

  %s.
  Without -apply the pass only reports what it would change.
`, c.name, c.synopsis)
}

func (c *maintenanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner user id.")
	f.StringVar(&c.company, "company", "", "Company id.")
	f.BoolVar(&c.apply, "apply", false, "Write the changes.")
}

func (c *maintenanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ownerID, err := parseID("owner", c.owner)
	if err != nil {
		return fail(err)
	}
	companyID, err := parseID("company", c.company)
	if err != nil {
		return fail(err)
	}

	useCases, err := c.app.open()
	if err != nil {
		return fail(err)
	}
	defer c.app.close()

	report, err := c.run(ctx, useCases, intercompany.CompanyMaintenanceInput{
		OwnerID:   ownerID,
		CompanyID: companyID,
		Apply:     c.apply,
	})
	if err != nil {
		return fail(err)
	}

	if err := c.app.print(report); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func runNormalize(ctx context.Context, useCases *dependency.UseCases, input intercompany.CompanyMaintenanceInput) (any, error) {
	output, err := useCases.NormalizeTransfers.Execute(ctx, input)
	if err != nil {
		return nil, err
	}
	return dto.ToNormalizeResponse(output), nil
}

func runDeduplicate(ctx context.Context, useCases *dependency.UseCases, input intercompany.CompanyMaintenanceInput) (any, error) {
	output, err := useCases.DeduplicateTransfers.Execute(ctx, input)
	if err != nil {
		return nil, err
	}
	return dto.ToDeduplicateResponse(output), nil
}

func runMigrate(ctx context.Context, useCases *dependency.UseCases, input intercompany.CompanyMaintenanceInput) (any, error) {
	output, err := useCases.MigrateTransferFields.Execute(ctx, input)
	if err != nil {
		return nil, err
	}
	return dto.ToMigrateResponse(output), nil
}

type mirrorCmd struct {
	app   *app
	owner string
	apply bool
}

func (*mirrorCmd) Name() string     { return "ic-mirror" }
func (*mirrorCmd) Synopsis() string { return "create missing inflows for intercompany outflows" }
func (*mirrorCmd) Usage() string {
	return `ledgerctl ic-mirror -owner <id> [-apply]

  Creates the receiving side of every outflow whose counterparty resolves to
  another owned company. Without -apply the pass only reports the plan.
`
}

func (c *mirrorCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner user id.")
	f.BoolVar(&c.apply, "apply", false, "Create the mirror transactions.")
}

func (c *mirrorCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ownerID, err := parseID("owner", c.owner)
	if err != nil {
		return fail(err)
	}

	useCases, err := c.app.open()
	if err != nil {
		return fail(err)
	}
	defer c.app.close()

	output, err := useCases.MirrorTransfers.Execute(ctx, intercompany.MirrorTransfersInput{
		OwnerID: ownerID,
		Apply:   c.apply,
	})
	if err != nil {
		return fail(err)
	}

	if err := c.app.print(dto.ToMirrorTransfersResponse(output)); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
