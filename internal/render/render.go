package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"repoprovas/client/internal/dto"
)

// 聚合树的终端渲染。纯展示层：逐层遍历展示模型，不含任何派生逻辑。

var (
	termStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	disciplineStyle  = lipgloss.NewStyle().Bold(true)
	categoryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	testStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	placeholderStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243"))
)

const (
	noTestsForTerm       = "该学期暂无试卷…"
	noTestsForDiscipline = "该学科暂无试卷…"
)

// Catalog 渲染按学科分组的目录树
func Catalog(terms []dto.TermView) string {
	var b strings.Builder
	for _, term := range terms {
		b.WriteString(termStyle.Render(fmt.Sprintf("第%d学期", term.Number)))
		b.WriteByte('\n')

		if len(term.Disciplines) == 0 {
			b.WriteString("  " + placeholderStyle.Render(noTestsForTerm) + "\n")
			continue
		}
		for _, d := range term.Disciplines {
			b.WriteString("  " + disciplineStyle.Render(d.Name) + "\n")
			if !d.HasTests {
				b.WriteString("    " + placeholderStyle.Render(noTestsForDiscipline) + "\n")
				continue
			}
			writeCategories(&b, "    ", d.Categories)
		}
	}
	return b.String()
}

// Teachers 渲染按教师分组的目录树
func Teachers(teachers []dto.TeacherView) string {
	var b strings.Builder
	for _, tv := range teachers {
		header := tv.Name
		if len(tv.Disciplines) > 0 {
			header += " — " + strings.Join(tv.Disciplines, "、")
		}
		b.WriteString(termStyle.Render(header))
		b.WriteByte('\n')

		if !tv.HasTests {
			b.WriteString("  " + placeholderStyle.Render(noTestsForDiscipline) + "\n")
			continue
		}
		writeCategories(&b, "  ", tv.Categories)
	}
	return b.String()
}

func writeCategories(b *strings.Builder, indent string, categories []dto.CategoryGroup) {
	for _, cat := range categories {
		b.WriteString(indent + categoryStyle.Render(cat.Name) + "\n")
		for _, line := range cat.Tests {
			b.WriteString(indent + "  " + testStyle.Render(fmt.Sprintf("[#%d] %s", line.ID, line.Label())) + "\n")
		}
	}
}
