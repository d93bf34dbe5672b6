// Package model はドメインモデルを定義する。
package model

// Launch は予約可能な打ち上げ枠を表す。
// 属性はカタログサービスの管理下にあり、このレイヤーではID参照以外は不透明に扱う。
type Launch struct {
	ID      string   `json:"id"`
	Site    string   `json:"site"`
	Year    string   `json:"year"`
	Mission *Mission `json:"mission"`
	Rocket  *Rocket  `json:"rocket"`
}

// Mission は打ち上げのミッションメタデータを表す。
type Mission struct {
	Name          string `json:"name"`
	PatchSmallURL string `json:"patch_small_url"`
	PatchLargeURL string `json:"patch_large_url"`
}

// Rocket は打ち上げに使用されるロケットを表す。
type Rocket struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
