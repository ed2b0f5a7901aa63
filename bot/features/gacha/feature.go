package gacha

import (
	"gacha/service"
)

type Feature struct {
	gachaService service.GachaService
}

func New(gachaService service.GachaService) *Feature {
	return &Feature{
		gachaService: gachaService,
	}
}
