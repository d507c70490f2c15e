package service

import (
	"repoprovas/client/internal/dto"
	"repoprovas/client/internal/model"
)

// 目录树纯派生逻辑：不发网络请求，不修改输入。
//
// 每个学科节点分两步派生：
//   1. 计算可见类别集——全局类别列表中、在该学科授课关联下至少有一份试卷的类别，
//      输出顺序保持全局列表顺序（不按字母重排）；
//   2. 对每个可见类别，列出该学科全部授课关联中属于该类别的试卷，
//      按关联顺序、再按服务端给定的试卷顺序输出，并标注授课教师姓名。
//
// 空类别不输出；类别未出现在全局列表中的试卷被静默忽略
// （类别列表独立拉取，可能落后于试卷数据，宁可少显示也不报错）。

// AggregateByDiscipline 将学期树与全局类别列表派生为按学科展示的树
func AggregateByDiscipline(terms []model.Term, categories []model.Category) []dto.TermView {
	views := make([]dto.TermView, 0, len(terms))
	for _, term := range terms {
		tv := dto.TermView{
			ID:          term.ID,
			Number:      term.Number,
			Disciplines: make([]dto.DisciplineView, 0, len(term.Disciplines)),
		}
		for _, d := range term.Disciplines {
			tv.Disciplines = append(tv.Disciplines, deriveDiscipline(d, categories))
		}
		views = append(views, tv)
	}
	return views
}

// AggregateByTeacher 将 groupBy=teachers 载荷派生为按教师展示的树
func AggregateByTeacher(groups []model.TeacherGroup, categories []model.Category) []dto.TeacherView {
	views := make([]dto.TeacherView, 0, len(groups))
	for _, g := range groups {
		v := dto.TeacherView{
			ID:   g.Teacher.ID,
			Name: g.Teacher.Name,
		}
		for _, d := range g.Disciplines {
			v.Disciplines = append(v.Disciplines, d.Name)
		}
		v.HasTests = len(g.Tests) > 0
		if v.HasTests {
			v.Categories = groupByCategory(categories, func(emit func(model.Test, string)) {
				for _, test := range g.Tests {
					emit(test, g.Teacher.Name)
				}
			})
		}
		views = append(views, v)
	}
	return views
}

// ── 内部派生 ──

func deriveDiscipline(d model.Discipline, categories []model.Category) dto.DisciplineView {
	view := dto.DisciplineView{ID: d.ID, Name: d.Name}

	// 无授课关联或全部关联均无试卷 → 终态占位，不再下钻。
	// 注意：有试卷但类别全部未知时不算占位，只是列表为空（fail-open）
	if !disciplineHasTests(d) {
		return view
	}
	view.HasTests = true

	view.Categories = groupByCategory(categories, func(emit func(model.Test, string)) {
		for _, td := range d.TeacherDisciplines {
			for _, test := range td.Tests {
				emit(test, td.Teacher.Name)
			}
		}
	})
	return view
}

func disciplineHasTests(d model.Discipline) bool {
	for _, td := range d.TeacherDisciplines {
		if len(td.Tests) > 0 {
			return true
		}
	}
	return false
}

// groupByCategory 按全局类别顺序分组。
// walk 负责按既定顺序吐出 (试卷, 教师名)，本函数只做归类，保证两个视图的分组规则一致。
func groupByCategory(categories []model.Category, walk func(emit func(model.Test, string))) []dto.CategoryGroup {
	byID := make(map[int]*dto.CategoryGroup, len(categories))
	for _, c := range categories {
		byID[c.ID] = &dto.CategoryGroup{ID: c.ID, Name: c.Name}
	}

	walk(func(test model.Test, teacherName string) {
		group, ok := byID[test.Category.ID]
		if !ok {
			return // 类别不在全局列表中，静默忽略
		}
		group.Tests = append(group.Tests, dto.TestLine{
			ID:      test.ID,
			Name:    test.Name,
			PdfURL:  test.PdfURL,
			Teacher: teacherName,
			Views:   test.View,
		})
	})

	result := make([]dto.CategoryGroup, 0, len(categories))
	for _, c := range categories {
		if group := byID[c.ID]; len(group.Tests) > 0 {
			result = append(result, *group)
		}
	}
	return result
}
