package broadcast

import (
	"math/rand"

	"github.com/ayah-app/notification-service/dto"
)

// dailyMessages is the fixed catalog for the daily reminder. One entry is
// picked per invocation; every subscriber of that invocation gets the same
// message.
var dailyMessages = []dto.Message{
	{Title: "تذكير يومي", Body: "سبحان الله وبحمده، سبحان الله العظيم"},
	{Title: "آية وتدبر", Body: "وَاذْكُر رَّبَّكَ فِي نَفْسِكَ تَضَرُّعًا وَخِيفَةً"},
	{Title: "دعاء اليوم", Body: "اللهم أعني على ذكرك وشكرك وحسن عبادتك"},
	{Title: "كنز من كنوز الجنة", Body: "لا حول ولا قوة إلا بالله"},
	{Title: "فضل الصلاة على النبي", Body: "اللهم صل وسلم على نبينا محمد"},
	{Title: "تسبيحة اليوم", Body: "سبحان الله وبحمده عدد خلقه ورضا نفسه وزنة عرشه ومداد كلماته"},
	{Title: "ذكر ودعاء", Body: "لا إله إلا أنت سبحانك إني كنت من الظالمين"},
	{Title: "استغفار", Body: "أستغفر الله الذي لا إله إلا هو الحي القيوم وأتوب إليه"},
	{Title: "دعاء العفو", Body: "اللهم إنك عفو كريم تحب العفو فاعف عنا"},
	{Title: "توكل على الله", Body: "حسبي الله لا إله إلا هو عليه توكلت وهو رب العرش العظيم"},
	{Title: "سيد الاستغفار", Body: "اللهم أنت ربي لا إله إلا أنت خلقتني وأنا عبدك وأنا على عهدك ووعدك ما استطعت"},
	{Title: "كلمتان خفيفتان", Body: "سبحان الله وبحمده، سبحان الله العظيم"},
}

// testMessage is the fixed payload for the manual delivery check.
var testMessage = dto.Message{
	Title: "إشعار تجريبي",
	Body:  "إذا وصلك هذا الإشعار، فالنظام يعمل بنجاح!",
}

func pickDailyMessage() dto.Message {
	return dailyMessages[rand.Intn(len(dailyMessages))]
}
