// Package scaffold declares file layouts, creates them on disk and exposes
// the files through a dotted namespace.
//
//	s := scaffold.New(fs, "/proj",
//	    scaffold.File("test.txt"),
//	    scaffold.Dir("src", scaffold.File("main.go"),
//	        scaffold.Dir("utils", scaffold.File("helpers.go"))),
//	)
//	_ = s.Ensure()
//	p, _ := s.Lookup("src.utils.helpers") // /proj/src/utils/helpers.go
package scaffold
