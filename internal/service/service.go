package service

import (
	"github.com/talkincode/taskrest/pkg/metrics"
)

// StoreOpMetric counts service operations, labelled by op and result
const StoreOpMetric = "store_op_total"

func track(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.Inc(StoreOpMetric, metrics.Label("op", op), metrics.Label("result", result))
}
