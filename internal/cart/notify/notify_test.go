package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shoping-cart/pkg/logger"
)

func TestRecorder(t *testing.T) {
	ctx, rec := WithRecorder(context.Background())

	Record(ctx, domain.OutOfStockWarning(domain.OpAdd, 1))
	Record(context.Background(), domain.FailureWarning(domain.OpAdd, 2))

	got := rec.Warnings()
	if len(got) != 1 || got[0].ProductID != 1 {
		t.Fatalf("expected only the scoped warning, got %+v", got)
	}
}

func TestLogWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(logger.New(logger.Options{Service: "test", Writer: &buf}))

	n.Warn(context.Background(), domain.OutOfStockWarning(domain.OpUpdate, 9))

	out := buf.String()
	if !strings.Contains(out, domain.MsgOutOfStock) || !strings.Contains(out, `"product_id":9`) {
		t.Fatalf("unexpected log line %q", out)
	}
}
