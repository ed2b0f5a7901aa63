package collection

import (
	"gacha/bot/common"
	"gacha/service"
)

type Feature struct {
	collectionService service.CollectionService
	members           common.MemberResolver
}

func New(collectionService service.CollectionService, members common.MemberResolver) *Feature {
	return &Feature{
		collectionService: collectionService,
		members:           members,
	}
}
