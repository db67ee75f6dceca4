package fakedata

// localeNames holds hand-rolled first/last name word lists across five
// locales. No faker library appears anywhere in the retrieval corpus,
// so name generation is built from these embedded lists instead —
// see DESIGN.md for the justification.
type localeNames struct {
	first []string
	last  []string
}

var locales = []localeNames{
	{ // en
		first: []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "William", "Elizabeth"},
		last:  []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"},
	},
	{ // zh (romanized)
		first: []string{"Wei", "Fang", "Jun", "Li", "Min", "Qiang", "Ying", "Hui", "Tao", "Lan"},
		last:  []string{"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao", "Wu", "Zhou"},
	},
	{ // ja (romanized)
		first: []string{"Haruto", "Yui", "Sota", "Aoi", "Ren", "Himari", "Riku", "Sakura", "Kaito", "Yuna"},
		last:  []string{"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto", "Nakamura", "Kobayashi", "Saito"},
	},
	{ // ko (romanized)
		first: []string{"Minjun", "Seoyeon", "Jihoon", "Jiwoo", "Doyoon", "Chaewon", "Siwoo", "Hayoon", "Junho", "Yerin"},
		last:  []string{"Kim", "Lee", "Park", "Choi", "Jung", "Kang", "Cho", "Yoon", "Jang", "Lim"},
	},
	{ // fr
		first: []string{"Lucas", "Emma", "Gabriel", "Jade", "Leo", "Louise", "Raphael", "Alice", "Arthur", "Chloe"},
		last:  []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau"},
	},
}

func (g *Generator) randomFullName() string {
	locale := locales[g.rng.Intn(len(locales))]
	first := locale.first[g.rng.Intn(len(locale.first))]
	last := locale.last[g.rng.Intn(len(locale.last))]
	return first + " " + last
}
