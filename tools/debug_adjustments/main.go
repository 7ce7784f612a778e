package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rpgo/lifeplan/internal/calculation"
	"github.com/rpgo/lifeplan/internal/config"
	"github.com/rpgo/lifeplan/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_adjustments <scenario-file>")
		return
	}
	p := config.NewInputParser()
	in, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine := calculation.NewEngine(domain.DefaultAssumptions())
	res, err := engine.Project(context.Background(), in)
	if err != nil {
		panic(err)
	}
	if len(res.Adjustments) == 0 {
		fmt.Println("no adjustments")
		return
	}

	fmt.Println("Index,Milestone,Series,Category,Year,Delta")
	for _, adj := range res.Adjustments {
		fmt.Printf("%d,%s,%s,%s,%d,%s\n", adj.Index, adj.Milestone, adj.Series, adj.Category, adj.Year, adj.Delta.StringFixed(2))
	}
}
