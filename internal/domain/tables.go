package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOprLog{},
	// Marketplace
	&User{},
	&Product{},
	&Order{},
	&Review{},
}
