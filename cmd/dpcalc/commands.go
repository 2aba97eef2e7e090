package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"brecho/internal/domain/payroll"
	"brecho/internal/domain/severance"
	"brecho/internal/domain/tax"
)

type cli struct {
	tablesFile string
	tables     *tax.Tables
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "dpcalc",
		Short:        "Brazilian payroll and tax calculators",
		Long:         "Calculates monthly payroll, 13th salary, vacation pay, termination settlements and small-business tax regimes.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			tables, err := tax.LoadTables(c.tablesFile)
			if err != nil {
				return err
			}
			c.tables = tables
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.tablesFile, "tables", "", "YAML file overriding the built-in tax tables")

	root.AddCommand(
		c.monthlyCmd(),
		c.thirteenthCmd(),
		c.vacationCmd(),
		c.regimesCmd(),
		c.severanceCmd(),
		c.tablesCmd(),
	)
	return root
}

func (c *cli) monthlyCmd() *cobra.Command {
	var (
		in  payroll.MonthlyInput
		raw struct {
			salary, overtime, premium, night, transport, meal, otherDeductions, otherEarnings string
		}
	)
	cmd := &cobra.Command{
		Use:   "folha",
		Short: "Monthly payroll for one employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p amountParser
			in.GrossSalary = p.parse("salario", raw.salary)
			in.OvertimeHours = p.parse("horas-extras", raw.overtime)
			in.NightHours = p.parse("noturno", raw.night)
			in.TransportPercent = p.parse("vt", raw.transport)
			in.MealVoucher = p.parse("vr", raw.meal)
			in.OtherDeductions = p.parse("outros-descontos", raw.otherDeductions)
			in.OtherEarnings = p.parse("outros-proventos", raw.otherEarnings)
			if cmd.Flags().Changed("percentual-hora-extra") {
				premium := p.parse("percentual-hora-extra", raw.premium)
				in.OvertimePremium = &premium
			}
			if p.err != nil {
				return p.err
			}
			result, err := payroll.NewCalculator(c.tables).Monthly(in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&raw.salary, "salario", "0", "gross monthly salary")
	flags.IntVar(&in.Dependents, "dependentes", 0, "number of dependents")
	flags.StringVar(&raw.overtime, "horas-extras", "0", "overtime hours")
	flags.StringVar(&raw.premium, "percentual-hora-extra", payroll.DefaultOvertimePremium.String(), "overtime premium in percent (50 to 100)")
	flags.StringVar(&raw.night, "noturno", "0", "night shift hours")
	flags.StringVar(&raw.transport, "vt", "0", "transport voucher percentage (0 to 6)")
	flags.StringVar(&raw.meal, "vr", "0", "meal voucher deduction")
	flags.StringVar(&raw.otherDeductions, "outros-descontos", "0", "other deductions")
	flags.StringVar(&raw.otherEarnings, "outros-proventos", "0", "other earnings")
	return cmd
}

func (c *cli) thirteenthCmd() *cobra.Command {
	var (
		in     payroll.ThirteenthInput
		salary string
	)
	cmd := &cobra.Command{
		Use:   "decimo-terceiro",
		Short: "13th salary, first or second parcel",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.GrossSalary, err = parseAmount("salario", salary); err != nil {
				return err
			}
			result, err := payroll.NewCalculator(c.tables).Thirteenth(in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&salary, "salario", "0", "gross monthly salary")
	cmd.Flags().IntVar(&in.MonthsWorked, "meses", 12, "months worked in the year (1 to 12)")
	cmd.Flags().StringVar(&in.Parcel, "parcela", payroll.ParcelFirst, "primeira or segunda")
	cmd.Flags().IntVar(&in.Dependents, "dependentes", 0, "number of dependents")
	return cmd
}

func (c *cli) vacationCmd() *cobra.Command {
	var (
		in     payroll.VacationInput
		salary string
		days   int
	)
	cmd := &cobra.Command{
		Use:   "ferias",
		Short: "Vacation pay with optional cash-out",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.GrossSalary, err = parseAmount("salario", salary); err != nil {
				return err
			}
			if cmd.Flags().Changed("dias") {
				in.Days = &days
			}
			result, err := payroll.NewCalculator(c.tables).Vacation(in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&salary, "salario", "0", "gross monthly salary")
	cmd.Flags().IntVar(&days, "dias", payroll.DefaultVacationDays, "vacation days (10 to 30)")
	cmd.Flags().BoolVar(&in.CashOut, "abono", false, "sell a third of the vacation days")
	cmd.Flags().IntVar(&in.Dependents, "dependentes", 0, "number of dependents")
	return cmd
}

func (c *cli) regimesCmd() *cobra.Command {
	var (
		in      tax.RegimeInput
		revenue string
	)
	cmd := &cobra.Command{
		Use:   "impostos",
		Short: "Compare MEI, Simples Nacional and Lucro Presumido",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.MonthlyRevenue, err = parseAmount("faturamento", revenue); err != nil {
				return err
			}
			result, err := c.tables.SimulateRegimes(in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&revenue, "faturamento", "0", "monthly revenue")
	cmd.Flags().StringVar(&in.Activity, "atividade", string(tax.Commerce), "comercio, servicos or industria")
	return cmd
}

func (c *cli) severanceCmd() *cobra.Command {
	var (
		req             severance.Request
		salary, balance string
	)
	cmd := &cobra.Command{
		Use:   "rescisao",
		Short: "Termination settlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.GrossSalary, err = parseAmount("salario", salary); err != nil {
				return err
			}
			if req.FGTSBalance, err = parseAmount("fgts", balance); err != nil {
				return err
			}
			in, err := req.Input()
			if err != nil {
				return err
			}
			result, err := severance.Calculate(in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&salary, "salario", "0", "gross monthly salary")
	flags.StringVar(&req.AdmissionDate, "admissao", "", "admission date (YYYY-MM-DD)")
	flags.StringVar(&req.TerminationDate, "demissao", "", "termination date (YYYY-MM-DD)")
	flags.StringVar(&req.Type, "tipo", string(severance.NoCause), "sem_justa_causa, com_justa_causa, pedido_demissao or acordo")
	flags.StringVar(&balance, "fgts", "0", "FGTS balance")
	flags.BoolVar(&req.NoticeWorked, "aviso-trabalhado", false, "notice period was worked")
	flags.BoolVar(&req.AccruedVacation, "ferias-vencidas", false, "has a full accrued vacation period")
	flags.IntVar(&req.ProportionalVacationMonths, "meses-ferias", 0, "months of proportional vacation (0 to 12)")
	return cmd
}

func (c *cli) tablesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tabelas",
		Short: "Print the tax tables in effect",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), c.tables)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(c.tables); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q, use json or yaml", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "formato", "json", "json or yaml")
	return cmd
}

// amountParser keeps the first parse error so a run of flags can be parsed
// before checking.
type amountParser struct {
	err error
}

func (p *amountParser) parse(flag, raw string) decimal.Decimal {
	d, err := parseAmount(flag, raw)
	if err != nil && p.err == nil {
		p.err = err
	}
	return d
}

func parseAmount(flag, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", flag, raw)
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
