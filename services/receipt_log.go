package services

import "restaurant-pos/models"

// ReceiptLog is the append-only receipt history of one session, newest first.
type ReceiptLog struct {
	receipts []models.Receipt
}

func (l *ReceiptLog) append(r models.Receipt) {
	l.receipts = append([]models.Receipt{r}, l.receipts...)
}

// Last returns the most recently appended receipt.
func (l *ReceiptLog) Last() (models.Receipt, bool) {
	if len(l.receipts) == 0 {
		return models.Receipt{}, false
	}
	return l.receipts[0], true
}

// All returns a copy of the log, newest first.
func (l *ReceiptLog) All() []models.Receipt {
	out := make([]models.Receipt, len(l.receipts))
	copy(out, l.receipts)
	return out
}

func (l *ReceiptLog) Len() int {
	return len(l.receipts)
}

// Total sums every receipt in the log.
func (l *ReceiptLog) Total() int64 {
	var sum int64
	for _, r := range l.receipts {
		sum += r.Total()
	}
	return sum
}
