package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"jshint/internal/engine"
	"jshint/internal/options"
)

var optionsLinter string

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the options understood by an analyzer and their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := engine.ParseVariant(optionsLinter)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderOptionTable(v))
		return nil
	},
}

func init() {
	optionsCmd.Flags().StringVar(&optionsLinter, "linter", "", "analyzer (jslint|jshint, default jshint)")
}

func renderOptionTable(v engine.Variant) string {
	rows := make([][]string, 0, 40)
	for _, spec := range options.Table(v.Profile()) {
		only := ""
		if spec.Profile != options.ProfileJSLint {
			only = spec.Profile.String()
		}
		rows = append(rows, []string{spec.Name, strconv.FormatBool(spec.Default), only, spec.Doc})
	}
	header := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("OPTION", "DEFAULT", "ONLY", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return header
			}
			return lipgloss.NewStyle().PaddingRight(1)
		}).
		String()
}
