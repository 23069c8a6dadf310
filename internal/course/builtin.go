package course

// Builtin returns the bundled courses in catalog order.
func Builtin() []Course {
	return []Course{
		{Name: "笔画", Entries: []Entry{
			{Answer: "a", Problems: runeRange(0xe001, 0xe002)},
			{Answer: "i", Problems: runeRange(0xe003, 0xe004)},
			{Answer: "m", Problems: runeRange(0xe005, 0xe006)},
			{Answer: "s", Problems: runeRange(0xe007, 0xe008)},
			{Answer: "x", Problems: runeRange(0xe009, 0xe00b)},
			{Answer: "y", Problems: runeRange(0xe00c, 0xe011)},
			{Answer: "z", Problems: runeRange(0xe012, 0xe019)},
		}},
		{Name: "主根1.1", Entries: []Entry{
			{Answer: "a", Problems: "一"},
			{Answer: "b", Problems: "土士", Hint: "[本]土"},
			{Answer: "c", Problems: "王", Hint: "王[朝]"},
			{Answer: "d", Problems: "扌\ue01a", Hint: "[地]上有个扣子"},
			{Answer: "e", Problems: "艹廾\ue01b", Hint: "草药可以[医]病"},
			{Answer: "f", Problems: "木", Hint: "木[筏]"},
			{Answer: "g", Problems: "石丆", Hint: "石[膏]"},
			{Answer: "h", Problems: "匚臣\ue01c\ue01d\ue01e", Hint: "工匠[喝]水"},
			{Answer: "cs", Problems: "玉"},
		}},
		{Name: "主根1.2", Entries: []Entry{
			{Answer: "i", Problems: "虫", Hint: "我(I)不喜欢虫子"},
			{Answer: "j", Problems: "口\ue01f", Hint: "口[诀]"},
			{Answer: "k", Problems: "日曰\ue020\ue021\ue022", Hint: "[看]日出"},
			{Answer: "l", Problems: "目", Hint: "目[录]"},
		}},
		{Name: "主根1.3", Entries: []Entry{
			{Answer: "m", Problems: "\ue023\ue024", Hint: "青梅竹[马]"},
			{Answer: "n", Problems: "亻", Hint: "仙[女]"},
			{Answer: "o", Problems: "八", Hint: "8与0形似"},
			{Answer: "p", Problems: "金钅", Hint: "金[牌]"},
			{Answer: "q", Problems: "月\ue025\ue026", Hint: "月[球]"},
			{Answer: "r", Problems: "鱼魚\ue027\ue028", Hint: "美[人]鱼"},
		}},
		{Name: "主根1.4", Entries: []Entry{
			{Answer: "s", Problems: "言\ue029\ue02a", Hint: "[誓]言"},
			{Answer: "t", Problems: "疒病", Hint: "[通]病"},
			{Answer: "u", Problems: "忄\ue02b", Hint: "怕你(U)了"},
			{Answer: "v", Problems: "氵\ue02c\ue02d", Hint: "胜利(V)渡江"},
			{Answer: "w", Problems: "之辶\ue02e", Hint: "逃[亡]"},
		}},
		{Name: "主根1.5", Entries: []Entry{
			{Answer: "x", Problems: "马\ue02f\ue030\ue031", Hint: "马[戏]"},
			{Answer: "y", Problems: "阝卩\ue032廴了", Hint: "陆[游]"},
			{Answer: "z", Problems: "纟糸", Hint: "丝[竹]"},
		}},
		{Name: "主根2.1", Entries: []Entry{
			{Answer: "bd", Problems: "二"},
			{Answer: "cd", Problems: "三"},
			{Answer: "ed", Problems: "十"},
			{Answer: "fd", Problems: "酉"},
			{Answer: "gd", Problems: "大\ue033"},
			{Answer: "hd", Problems: "七\ue034\ue035\ue036\ue037"},
		}},
		{Name: "主根2.2", Entries: []Entry{
			{Answer: "id", Problems: "卜\ue038\ue039"},
			{Answer: "jd", Problems: "\ue040因"},
			{Answer: "kd", Problems: "刂\ue042\ue043\ue044"},
			{Answer: "ld", Problems: "冂同\ue045冋冏\ue046\ue047\ue048\ue049\ue04a岡罔冈网"},
		}},
		{Name: "主根2.3", Entries: []Entry{
			{Answer: "nd", Problems: "川\ue04b\ue04c\ue04d"},
			{Answer: "od", Problems: "\ue04f人"},
			{Answer: "oda", Problems: "入"},
			{Answer: "pd", Problems: "\ue050斤\ue051"},
			{Answer: "pda", Problems: "丘"},
			{Answer: "qd", Problems: "几"},
			{Answer: "qda", Problems: "凡"},
			{Answer: "rd", Problems: "儿"},
		}},
		{Name: "主根2.4", Entries: []Entry{
			{Answer: "td", Problems: "\ue052\ue053\ue054"},
			{Answer: "ud", Problems: "\ue055\ue056"},
			{Answer: "vd", Problems: "\ue057"},
			{Answer: "wd", Problems: "宀定"},
		}},
		{Name: "主根2.5", Entries: []Entry{
			{Answer: "yd", Problems: "刀"},
			{Answer: "yda", Problems: "乙⺄"},
			{Answer: "zd", Problems: "巛巜\ue058"},
		}},
	}
}

func runeRange(from, to rune) string {
	runes := make([]rune, 0, to-from+1)
	for r := from; r <= to; r++ {
		runes = append(runes, r)
	}
	return string(runes)
}
