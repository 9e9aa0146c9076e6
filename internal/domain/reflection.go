package domain

import "time"

// ReflectionOption is one of the three answer choices for a question.
// Values run 2 (good), 1 (middle), 0 (concern).
type ReflectionOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ReflectionQuestion is one quiz question grouped under a pillar.
type ReflectionQuestion struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Pillar  string             `json:"pillar"`
	Options []ReflectionOption `json:"options"`
}

func opts(good, mid, bad string) []ReflectionOption {
	return []ReflectionOption{
		{Label: good, Value: 2},
		{Label: mid, Value: 1},
		{Label: bad, Value: 0},
	}
}

// ReflectionQuestions is the full question bank, in presentation order.
var ReflectionQuestions = []ReflectionQuestion{
	{
		ID: "q1", Pillar: "Rasa Aman",
		Title:   "Saat memikirkan kondisi keuanganmu sekarang, kamu merasa…",
		Options: opts("😌 Cukup tenang", "😐 Kadang kepikiran", "😟 Sering cemas"),
	},
	{
		ID: "q2", Pillar: "Arus Bulanan",
		Title:   "Di akhir bulan, kondisi uangmu biasanya…",
		Options: opts("😌 Masih ada sisa", "😐 Pas-pasan", "😟 Sering kurang"),
	},
	{
		ID: "q3", Pillar: "Kontrol",
		Title:   "Soal pengeluaran sehari-hari, kamu merasa…",
		Options: opts("😌 Masih terkendali", "😐 Kadang kebablasan", "😟 Sering nggak sadar habis ke mana"),
	},
	{
		ID: "q4", Pillar: "Ketahanan",
		Title:   "Kalau tiba-tiba tidak ada pemasukan sementara waktu…",
		Options: opts("😌 Masih cukup tenang", "😐 Bisa bertahan sebentar", "😟 Langsung khawatir"),
	},
	{
		ID: "q5", Pillar: "Cadangan",
		Title:   "Tentang tabungan atau dana cadanganmu…",
		Options: opts("😌 Ada dan terasa cukup", "😐 Ada, tapi tipis", "😟 Hampir tidak ada"),
	},
	{
		ID: "q6", Pillar: "Beban",
		Title:   "Soal cicilan atau utang yang kamu punya…",
		Options: opts("😌 Tidak membebani", "😐 Ada, tapi masih bisa diatur", "😟 Sering bikin kepikiran"),
	},
	{
		ID: "q7", Pillar: "Ruang",
		Title:   "Setelah bayar semua kebutuhan & kewajiban, kamu merasa…",
		Options: opts("😌 Masih ada ruang bernapas", "😐 Agak sempit", "😟 Sangat tertekan"),
	},
	{
		ID: "q8", Pillar: "Proteksi",
		Title:   "Kalau terjadi hal besar (sakit, musibah, dll)…",
		Options: opts("😌 Sudah ada perlindungan dasar", "😐 Sebagian ada", "😟 Belum siap sama sekali"),
	},
	{
		ID: "q9", Pillar: "Arah",
		Title:   "Soal rencana keuangan ke depan…",
		Options: opts("😌 Sudah punya arah", "😐 Ada niat, tapi belum konsisten", "😟 Belum kepikiran"),
	},
	{
		ID: "q10", Pillar: "Kebiasaan",
		Title:   "Dalam beberapa bulan terakhir, kamu…",
		Options: opts("😌 Rutin menyisihkan uang", "😐 Kadang-kadang", "😟 Hampir tidak pernah"),
	},
	{
		ID: "q11", Pillar: "Ringkasan",
		Title:   "Kalau dirangkum, kondisi keuanganmu sekarang terasa…",
		Options: opts("😌 Masih terkendali", "😐 Perlu dirapikan", "😟 Cukup berat"),
	},
}

// ReflectionMaxScore is two points per question.
var ReflectionMaxScore = len(ReflectionQuestions) * 2

// ReflectionAnswers maps question ID to the chosen option value.
type ReflectionAnswers map[string]int

func (a ReflectionAnswers) Validate() error {
	for _, v := range a {
		if v < 0 || v > 2 {
			return ErrAnswerValueInvalid
		}
	}
	return nil
}

// Total treats unanswered questions as zero.
func (a ReflectionAnswers) Total() int {
	total := 0
	for _, q := range ReflectionQuestions {
		total += a[q.ID]
	}
	return total
}

// ReflectionArchetype is the animal persona the total score maps to.
type ReflectionArchetype struct {
	Key       string `json:"animalKey"`
	Name      string `json:"animalName"`
	Tagline   string `json:"animalTagline"`
	Image     string `json:"animalImage"`
	HeroTitle string `json:"heroTitle"`
	HeroDesc  string `json:"heroDesc"`
	Insight   string `json:"insightMain"`
}

// ReflectionStep is one suggested action for the archetype.
type ReflectionStep struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// ReflectionResult is the finalized quiz outcome. The numeric score stays
// internal to the payload, the persona carries the presentation.
type ReflectionResult struct {
	Version int               `json:"version"`
	Answers ReflectionAnswers `json:"answers"`

	Total int `json:"total"`
	Max   int `json:"max"`

	ReflectionArchetype

	Strengths []string         `json:"strengths"`
	Focus     []string         `json:"focus"`
	Steps     []ReflectionStep `json:"steps"`

	SubmittedAt time.Time `json:"submittedAt"`
}

// PickArchetype maps a total score onto one of the seven personas.
func PickArchetype(total int) ReflectionArchetype {
	switch {
	case total >= 20:
		return ReflectionArchetype{
			Key:       "singa",
			Name:      "Singa Tenang",
			Tagline:   "Kuat, stabil, dan nggak gampang panik",
			Image:     "/images/cek-keuangan/singa-tenang.png",
			HeroTitle: "Fondasi keuanganmu kuat dan stabil.",
			HeroDesc:  "Kamu bukan cuma bertahan, kamu punya kontrol. Tinggal dijaga ritmenya supaya tetap lega.",
			Insight:   "Kamu sudah punya sistem yang bekerja. Tugasmu sekarang: menjaga konsistensi.",
		}
	case total >= 17:
		return ReflectionArchetype{
			Key:       "gajah",
			Name:      "Gajah Kokoh",
			Tagline:   "Tahan banting, pelan tapi aman",
			Image:     "/images/cek-keuangan/gajah-kokoh.png",
			HeroTitle: "Kamu kuat dan tahan banting.",
			HeroDesc:  "Walau pelan, kamu aman. Tinggal arahkan langkahnya supaya makin lega.",
			Insight:   "Stabilitasmu bagus. Sekarang tinggal bikin tujuan terasa lebih nyata.",
		}
	case total >= 14:
		return ReflectionArchetype{
			Key:       "serigala",
			Name:      "Serigala Siaga",
			Tagline:   "Aman, tapi perlu waspada",
			Image:     "/images/cek-keuangan/serigala-siaga.png",
			HeroTitle: "Kamu cukup aman, tapi masih perlu waspada.",
			HeroDesc:  "Kalau nggak dirapikan, kamu bisa terkuras pelan-pelan tanpa terasa.",
			Insight:   "Kuncinya bukan kerja lebih keras, tapi bikin pengeluaran lebih terkendali.",
		}
	case total >= 11:
		return ReflectionArchetype{
			Key:       "rubah",
			Name:      "Rubah Cerdas",
			Tagline:   "Jago adaptasi, rawan improvisasi",
			Image:     "/images/cek-keuangan/rubah-cerdas.png",
			HeroTitle: "Kamu pintar beradaptasi.",
			HeroDesc:  "Tapi terlalu sering mengandalkan improvisasi. Sedikit perapihan bikin hidup jauh lebih lega.",
			Insight:   "Masalah terbesarmu bukan uang masuk, tapi kebocoran kecil yang dibiarkan.",
		}
	case total >= 8:
		return ReflectionArchetype{
			Key:       "kura",
			Name:      "Kura-kura Bertahan",
			Tagline:   "Masih jalan, tapi ruang bernapas sempit",
			Image:     "/images/cek-keuangan/kura-bertahan.png",
			HeroTitle: "Kamu masih bertahan, tapi ruang geraknya sempit.",
			HeroDesc:  "Kalau tidak dibantu, capeknya numpuk. Fokus kita: bikin ruang bernapas dulu.",
			Insight:   "Prioritasmu sekarang: bikin ruang bernapas dulu.",
		}
	case total >= 5:
		return ReflectionArchetype{
			Key:       "tupai",
			Name:      "Tupai Sibuk",
			Tagline:   "Banyak gerak, belum terasa maju",
			Image:     "/images/cek-keuangan/tupai-sibuk.png",
			HeroTitle: "Kamu banyak bergerak, tapi belum terasa maju.",
			HeroDesc:  "Energi kamu habis ngurus hal kecil. Kita perlu fokus ke satu perbaikan yang paling berdampak.",
			Insight:   "Satu perbaikan besar lebih efektif daripada banyak perubahan kecil.",
		}
	default:
		return ReflectionArchetype{
			Key:       "ikan",
			Name:      "Ikan Terombang-ambing",
			Tagline:   "Sedang berat, tapi bisa dibantu",
			Image:     "/images/cek-keuangan/ikan-terombang.png",
			HeroTitle: "Keuanganmu sedang berat dan gampang kebawa keadaan.",
			HeroDesc:  "Ini bukan gagal. Ini fase yang bisa dibantu. Kita mulai dari pegangan pertama yang jelas.",
			Insight:   "Kita tidak perlu sempurna dulu. Kita perlu pegangan pertama.",
		}
	}
}

type insightPair struct {
	good string
	bad  string
}

// Only a subset of questions feeds the strengths/focus lists. q1, q7 and q11
// are overall-mood questions and stay out of it.
var insightByQuestion = map[string]insightPair{
	"q2": {
		good: "Arus bulananmu cenderung aman (akhir bulan masih punya sisa / tidak sering kurang).",
		bad:  "Arus bulananmu sering mepet (akhir bulan pas-pasan atau sering kurang).",
	},
	"q3": {
		good: "Kamu punya kontrol yang cukup atas pengeluaran harian.",
		bad:  "Pengeluaran harian masih sering kebablasan / tidak terasa alurnya.",
	},
	"q4": {
		good: "Kamu punya ketahanan kalau pemasukan tiba-tiba berhenti sementara.",
		bad:  "Kalau pemasukan berhenti, kamu akan cepat merasa tertekan.",
	},
	"q5": {
		good: "Dana cadanganmu sudah mulai memberi rasa aman.",
		bad:  "Dana cadangan masih tipis, ini biasanya sumber rasa cemas utama.",
	},
	"q6": {
		good: "Cicilan/utangmu belum jadi beban besar.",
		bad:  "Cicilan/utangmu terasa membebani dan butuh strategi penenangan.",
	},
	"q8": {
		good: "Proteksi dasar sudah ada (atau setidaknya kamu mulai memikirkannya).",
		bad:  "Proteksi masih minim, risiko kejadian besar bisa bikin keuangan goyah.",
	},
	"q9": {
		good: "Kamu sudah punya arah ke depan (tujuan) meskipun sederhana.",
		bad:  "Arah ke depan belum kebayang, kita buat tujuan yang gampang dan dekat dulu.",
	},
	"q10": {
		good: "Kebiasaan menyisihkan uang sudah terbentuk.",
		bad:  "Kebiasaan menyisihkan uang belum terbentuk, kita mulai dari nominal kecil dulu.",
	},
}

// PickInsights collects up to three strengths and three focus areas, in
// question order. Both lists carry a fallback line when empty.
func PickInsights(answers ReflectionAnswers) (strengths, focus []string) {
	for _, q := range ReflectionQuestions {
		pair, ok := insightByQuestion[q.ID]
		if !ok {
			continue
		}
		v, answered := answers[q.ID]
		if !answered {
			continue
		}
		if v == 2 && len(strengths) < 3 {
			strengths = append(strengths, pair.good)
		}
		if v == 0 && len(focus) < 3 {
			focus = append(focus, pair.bad)
		}
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Kamu masih mau ngecek dan jujur, itu sudah langkah besar.")
	}
	if len(focus) == 0 {
		focus = append(focus, "Tinggal dipoles konsistensinya agar lebih terasa aman.")
	}
	return strengths, focus
}

// PickSteps returns the three suggested actions for the persona.
func PickSteps(animalKey string) []ReflectionStep {
	switch animalKey {
	case "singa":
		return []ReflectionStep{
			{Title: "Kunci autopilot", Desc: "Bikin sistem yang jalan sendiri (mis. auto-pindah ke tabungan tujuan)."},
			{Title: "Naikkan level tujuan", Desc: "Pilih 1 tujuan yang dekat dan konkret (3–12 bulan)."},
			{Title: "Review ringan bulanan", Desc: "Cukup 10 menit sebulan untuk cek kebocoran kecil."},
		}
	case "gajah":
		return []ReflectionStep{
			{Title: "Tajamkan arah", Desc: "Pilih 1 tujuan terdekat supaya langkahmu terasa jelas."},
			{Title: "Tambah konsistensi sedikit", Desc: "Sisihkan kecil tapi rutin. Yang penting 'pasti' dulu."},
			{Title: "Rapikan 1 kebocoran", Desc: "Ambil satu pengeluaran yang sering nggak terasa, lalu pasang batas sederhana."},
		}
	case "serigala":
		return []ReflectionStep{
			{Title: "Stop tambah beban baru", Desc: "Tahan cicilan baru dulu sampai kondisi makin lega."},
			{Title: "Cari titik paling menguras", Desc: "Biasanya arus bulanan atau kebiasaan belanja yang 'ngalir'."},
			{Title: "Tambah bantalan aman", Desc: "Mulai dana penenang kecil tapi rutin."},
		}
	case "rubah":
		return []ReflectionStep{
			{Title: "Pilih 1 kebocoran terbesar", Desc: "Bukan semuanya. Satu dulu yang paling berpengaruh."},
			{Title: "Pasang batas sederhana", Desc: "Buat aturan kecil untuk 1 kategori yang sering kebablasan."},
			{Title: "Tabungan 'penenang'", Desc: "Sekecil apa pun, yang penting rutin, biar rasa aman balik pelan-pelan."},
		}
	case "kura":
		return []ReflectionStep{
			{Title: "Bikin ruang bernapas", Desc: "Kurangi tekanan 1 sumber utama (tagihan/cicilan/pengeluaran rutin)."},
			{Title: "Stop kebocoran rutin", Desc: "Cari 1 pengeluaran kecil yang sering muncul dan rapikan."},
			{Title: "Tambah dana cadangan", Desc: "Mulai dari nominal kecil tapi konsisten."},
		}
	case "tupai":
		return []ReflectionStep{
			{Title: "Fokus 1 perbaikan besar", Desc: "Satu perubahan yang paling berdampak lebih efektif daripada banyak perubahan kecil."},
			{Title: "Bikin sistem kecil", Desc: "Auto / batas sederhana supaya kamu nggak capek mikir terus."},
			{Title: "Evaluasi 2 minggu", Desc: "Cek hasilnya setelah 2 minggu, jangan tiap hari."},
		}
	default:
		return []ReflectionStep{
			{Title: "Utamakan bulan ini dulu", Desc: "Fokus bikin kondisi lebih ringan, bukan langsung sempurna."},
			{Title: "Stop tambah beban baru", Desc: "Sementara waktu, tahan cicilan baru dan keputusan besar."},
			{Title: "Bikin 1 kebiasaan kecil", Desc: "Yang penting pasti dilakukan 2–4 minggu ke depan."},
		}
	}
}
