package config

// CategoryWeights orders command categories in the help listing.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"📢 Utilities":    10,
	"🧩 Custom":       20,
	"⚙️ Settings":    50,
	"⚙️ Maintenance": 100,
}
