package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"inspection-service/service/sampling"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rootOptions 全局参数
type rootOptions struct {
	table  string
	output string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "samplingctl",
		Short:         "NBR 5426 抽样计算工具",
		Long:          "samplingctl 按 NBR 5426 / ANSI Z1.4 计算样本字码、样本量、接收/拒收数并给出批判定。",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.table, "table", sampling.CodeTableApplication, "字码表 (application, ansi_z1.4)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "yaml", "输出格式 (yaml, json)")

	cmd.AddCommand(
		newTableCmd(opts),
		newCodeCmd(opts),
		newPlanCmd(opts),
		newBonificationCmd(opts),
		newEvaluateCmd(opts),
		newGraphicCmd(opts),
	)
	return cmd
}

func (o *rootOptions) engine() (*sampling.Engine, error) {
	rows, err := sampling.CodeTableByName(o.table)
	if err != nil {
		return nil, err
	}
	return sampling.NewEngine(rows)
}

func (o *rootOptions) print(w io.Writer, v interface{}) error {
	switch strings.ToLower(o.output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		// 先经 JSON 转换，使 YAML 键名与 HTTP 接口一致
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return fmt.Errorf("不支持的输出格式 %q", o.output)
	}
}

// tableRow 字码表输出行，附带各水平对应的样本量
type tableRow struct {
	Min      int    `json:"min"`
	Max      string `json:"max"`
	CodeI    string `json:"I"`
	CodeII   string `json:"II"`
	CodeIII  string `json:"III"`
	SampleII int    `json:"sample_size_II"`
}

func newTableCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "打印批量-字码表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			rows := engine.CodeTable()
			out := make([]tableRow, 0, len(rows))
			for _, row := range rows {
				upper := "∞"
				if row.Max != sampling.Unbounded {
					upper = fmt.Sprint(row.Max)
				}
				size, err := engine.ResolveSampleSize(row.CodeII)
				if err != nil {
					return err
				}
				out = append(out, tableRow{
					Min:      row.Min,
					Max:      upper,
					CodeI:    string(row.CodeI),
					CodeII:   string(row.CodeII),
					CodeIII:  string(row.CodeIII),
					SampleII: size,
				})
			}
			return opts.print(cmd.OutOrStdout(), out)
		},
	}
}

func newCodeCmd(opts *rootOptions) *cobra.Command {
	var lotSize int
	var level string

	cmd := &cobra.Command{
		Use:   "code",
		Short: "按批量与检验水平查询样本字码",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			lvl, err := sampling.ParseInspectionLevel(level)
			if err != nil {
				return err
			}
			code, err := engine.ResolveSampleSizeCode(lotSize, lvl)
			if err != nil {
				return err
			}
			size, err := engine.ResolveSampleSize(code)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), map[string]interface{}{
				"lot_size":         lotSize,
				"inspection_level": string(lvl),
				"sample_code":      string(code),
				"sample_size":      size,
			})
		},
	}
	cmd.Flags().IntVar(&lotSize, "lot", 0, "批量")
	cmd.Flags().StringVar(&level, "level", string(sampling.LevelII), "检验水平 (I, II, III)")
	_ = cmd.MarkFlagRequired("lot")
	return cmd
}

// planFlags 抽样方案通用参数
type planFlags struct {
	lotSize int
	level   string
	major   float64
	minor   float64
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.lotSize, "lot", 0, "批量")
	cmd.Flags().StringVar(&f.level, "level", string(sampling.LevelII), "检验水平 (I, II, III)")
	cmd.Flags().Float64Var(&f.major, "aql-major", sampling.DefaultAQLs.Major, "严重缺陷 AQL")
	cmd.Flags().Float64Var(&f.minor, "aql-minor", sampling.DefaultAQLs.Minor, "轻微缺陷 AQL")
	_ = cmd.MarkFlagRequired("lot")
}

func (f *planFlags) compute(engine *sampling.Engine) (sampling.SamplingPlan, error) {
	lvl, err := sampling.ParseInspectionLevel(f.level)
	if err != nil {
		return sampling.SamplingPlan{}, err
	}
	return engine.ComputeSamplingPlan(f.lotSize, lvl, sampling.AQLSet{Major: f.major, Minor: f.minor})
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	flags := &planFlags{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "计算完整抽样方案",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			plan, err := flags.compute(engine)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), plan)
		},
	}
	flags.register(cmd)
	return cmd
}

func newBonificationCmd(opts *rootOptions) *cobra.Command {
	var lotSize int
	cmd := &cobra.Command{
		Use:   "bonification",
		Short: "计算赠品全检方案",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			plan, err := engine.ComputeBonificationSampling(lotSize)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().IntVar(&lotSize, "lot", 0, "批量")
	_ = cmd.MarkFlagRequired("lot")
	return cmd
}

// evaluation 判定输出
type evaluation struct {
	sampling.Evaluation
	Label          string                  `json:"label"`
	SampleSize     int                     `json:"sample_size"`
	QuantityStatus sampling.QuantityStatus `json:"quantity_status,omitempty"`
}

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	flags := &planFlags{}
	var observed sampling.DefectCounts
	var inspected int

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "按观测缺陷数给出批判定",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			plan, err := flags.compute(engine)
			if err != nil {
				return err
			}
			ev, err := sampling.EvaluateDetail(plan.Limits, observed)
			if err != nil {
				return err
			}
			out := evaluation{Evaluation: ev, Label: ev.Disposition.Label(), SampleSize: plan.SampleSize}
			if inspected > 0 {
				if out.QuantityStatus, err = sampling.CheckInspectedQuantity(plan.SampleSize, inspected); err != nil {
					return err
				}
			}
			return opts.print(cmd.OutOrStdout(), out)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&observed.Critical, "critical", 0, "致命缺陷数")
	cmd.Flags().IntVar(&observed.Major, "major", 0, "严重缺陷数")
	cmd.Flags().IntVar(&observed.Minor, "minor", 0, "轻微缺陷数")
	cmd.Flags().IntVar(&inspected, "inspected", 0, "实检数量，0 表示不比较")
	return cmd
}

func newGraphicCmd(opts *rootOptions) *cobra.Command {
	var sampleSize int
	var bonification bool
	cmd := &cobra.Command{
		Use:   "graphic",
		Short: "计算印刷品与拍照子样本",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compute := sampling.GraphicInspection
			if bonification {
				compute = sampling.BonificationGraphicInspection
			}
			plan, err := compute(sampleSize)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "样本量")
	cmd.Flags().BoolVar(&bonification, "bonification", false, "赠品批，只需 1 件拍照")
	_ = cmd.MarkFlagRequired("sample")
	return cmd
}
