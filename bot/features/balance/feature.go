package balance

import (
	"gacha/service"
)

type Feature struct {
	ledgerService service.LedgerService
}

func New(ledgerService service.LedgerService) *Feature {
	return &Feature{
		ledgerService: ledgerService,
	}
}
