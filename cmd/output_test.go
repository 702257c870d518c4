package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"inventory.GO/model/modeltest"
	inventoryService "inventory.GO/service/inventory"
	"inventory.GO/service/reconcile"
)

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	printResult(&out, &reconcile.Result{
		RunID:          "run-1",
		Kind:           reconcile.KindFull,
		NewItems:       2,
		SalesProcessed: 5,
		WindowStart:    start,
		WindowEnd:      start.Add(time.Hour),
		Warnings:       []reconcile.Warning{{Kind: reconcile.UnknownLineItem, ItemID: "X", OrderID: "o1"}},
	}, 1500*time.Millisecond)

	s := out.String()
	for _, want := range []string{"Sync Report (full)", "New items:       2", "Sales processed: 5", "2024-03-01T01:00:00Z", "[warn]"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestPrintAdvice(t *testing.T) {
	var out bytes.Buffer
	printAdvice(&out, nil)
	if !strings.Contains(out.String(), "Nothing to reorder") {
		t.Errorf("empty output = %q", out.String())
	}

	svc := inventoryService.NewService(modeltest.OpenDB(t))
	if _, err := svc.AddItem(inventoryService.ItemInput{Name: "Flour", Stock: "1", ReorderThreshold: "4", ReorderQuantity: "10", Supplier: "Mill"}); err != nil {
		t.Fatal(err)
	}
	advice, err := svc.ReorderAdvisory("")
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	printAdvice(&out, advice)
	if !strings.Contains(out.String(), "Flour") || !strings.Contains(out.String(), "Mill") {
		t.Errorf("output = %q", out.String())
	}
}
