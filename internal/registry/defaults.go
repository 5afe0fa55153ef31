package registry

import "fmt"

// Default returns the built-in registry, validated and ready to use.
// It panics if the built-in data is inconsistent, which is a build defect.
func Default() *Registry {
	r := defaultData()
	if err := r.Validate(); err != nil {
		panic(fmt.Sprintf("built-in registry: %v", err))
	}
	return r
}

func defaultData() *Registry {
	return &Registry{
		Sources: map[string]string{
			"com.kbstar.kbbank":           "KB국민은행",
			"com.kbstar.reboot":           "KB국민은행",
			"com.shinhan.sbanking":        "신한은행",
			"com.shinhan.sbanking.mall":   "신한은행",
			"com.kebhana.hanapush":        "하나은행",
			"com.hanaskcard.rocomo.potal": "하나은행",
			"com.wooribank.smart.npib":    "우리은행",
			"com.woori.smartbanking":      "우리은행",
			"nh.smart.banking":            "NH농협은행",
			"com.nh.cashcook":             "NH농협은행",
			"com.kakaobank.channel":       "카카오뱅크",
			"com.ibk.neobanking":          "IBK기업은행",
			"com.epost.psf.sdsi":          "우체국",
			"com.kfcc.member":             "새마을금고",
			"com.smg.spbs":                "새마을금고",
			"com.cu.sb":                   "신협",
			"com.scbank.ma30":             "SC제일은행",
			"com.citibank.citimobile":     "씨티은행",
			"com.dgb.mobilebranch":        "대구은행",
			"com.bnk.bsb":                 "부산은행",
			"com.bnk.kn":                  "경남은행",
			"com.knb.psb":                 "광주은행",
			"com.jeonbukbank.jbmb":        "전북은행",
			"com.jeju.jejubank":           "제주은행",
			"com.kdb.touch":               "KDB산업은행",
			"com.suhyup.mbanking":         "수협은행",
			"com.kakaopay.app":            "카카오페이",
			"com.kakao.talk":              "카카오톡",
			"viva.republica.toss":         "토스",
			"com.naverfin.payapp":         "네이버페이",
			"com.nhn.android.search":      "네이버",
			"com.nhnent.payapp":           "페이코",
			"com.payco.app":               "페이코",
			"com.kftc.zeropay.consumer":   "제로페이",
			"kr.or.zeropay.zip":           "제로페이",
		},
		DepositKeywords: []string{
			"받기완료", "받기 완료", "송금받기", "이체입금", "입금완료", "입금알림",
			"받아주세요", "보냈어요", "보냈습니다",
			"입금", "충전", "받았",
		},
		WithdrawalKeywords: []string{
			"보내기완료", "보내기 완료", "출금완료", "이체완료", "카드승인",
			"출금", "이체", "결제", "송금", "차감", "인출",
		},
		FailedKeywords: []string{
			"실패", "불가", "오류", "에러", "거부", "거절", "반려", "미승인",
		},
		CancelledKeywords: []string{
			"취소", "환불", "철회", "복원", "반품",
		},
		ExcludeKeywords: []string{
			"광고", "이벤트", "혜택", "할인", "대출", "보험", "카드발급",
			"인증번호", "OTP", "업데이트", "설치", "다운로드", "프로모션",
			"캠페인", "공지", "가입", "추천", "무료", "당첨", "경품",
			"마케팅", "수신동의", "약관",
		},
		MethodKeywords: map[string][]string{
			"카카오페이": {"카카오페이", "카카오머니", "카카오송금"},
			"네이버페이": {"네이버페이", "N페이", "네이버 페이"},
			"제로페이":  {"제로페이"},
			"페이코":   {"페이코", "PAYCO"},
			"토스":    {"토스머니", "토스송금", "토스입금", "토스"},
			"연락처송금": {"연락처송금", "연락처 송금", "연락처"},
			"체크/카드": {"체크카드", "카드결제", "카드승인", "신용카드"},
			"카드결제":  {"체크카드", "카드결제", "카드승인", "신용카드"},
			"간편결제":  {"간편결제", "간편송금"},
			"페이충전":  {"머니충전", "페이충전", "자동충전"},
			"QR결제":  {"QR결제", "QR 결제", "QR페이", "큐알"},
		},
		SourceMethods: map[string]string{
			"com.kakaopay.app":          "카카오페이",
			"viva.republica.toss":       "토스",
			"com.naverfin.payapp":       "네이버페이",
			"com.nhnent.payapp":         "페이코",
			"com.payco.app":             "페이코",
			"com.kftc.zeropay.consumer": "제로페이",
			"kr.or.zeropay.zip":         "제로페이",
		},
		MerchantSources: []string{
			"com.kftc.zeropay.consumer",
			"kr.or.zeropay.zip",
		},
		EcosystemPairs: []Pair{
			{A: "com.kakaopay.app", B: "com.kakao.talk"},
			{A: "com.kakaobank.channel", B: "com.kakao.talk"},
			{A: "com.naverfin.payapp", B: "com.nhn.android.search"},
			{A: "com.nhnent.payapp", B: "com.payco.app"},
			{A: "com.kftc.zeropay.consumer", B: "kr.or.zeropay.zip"},
		},
		SMSPatterns: []SMSPattern{
			{Pattern: `\[?KB국민\]?|\[?국민은행\]?|국민카드`, Bank: "KB국민은행"},
			{Pattern: `\[?신한\]?|신한은행|신한카드|\[?신한SOL\]?`, Bank: "신한은행"},
			{Pattern: `\[?하나\]?|하나은행|하나카드|KEB하나`, Bank: "하나은행"},
			{Pattern: `\[?우리\]?|우리은행|우리카드`, Bank: "우리은행"},
			{Pattern: `\[?NH농협\]?|\[?농협\]?|NH은행`, Bank: "NH농협은행"},
			{Pattern: `\[?카카오뱅크\]?`, Bank: "카카오뱅크"},
			{Pattern: `\[?IBK기업\]?|기업은행`, Bank: "IBK기업은행"},
			{Pattern: `\[?SC제일\]?|SC은행`, Bank: "SC제일은행"},
			{Pattern: `\[?씨티\]?|시티은행`, Bank: "씨티은행"},
			{Pattern: `\[?대구은행\]?|\[?DGB\]?`, Bank: "대구은행"},
			{Pattern: `\[?부산은행\]?|\[?BNK부산\]?`, Bank: "부산은행"},
			{Pattern: `\[?경남은행\]?|\[?BNK경남\]?`, Bank: "경남은행"},
			{Pattern: `\[?광주은행\]?`, Bank: "광주은행"},
			{Pattern: `\[?전북은행\]?`, Bank: "전북은행"},
			{Pattern: `\[?제주은행\]?`, Bank: "제주은행"},
			{Pattern: `\[?산업은행\]?|\[?KDB\]?`, Bank: "KDB산업은행"},
			{Pattern: `\[?수협\]?|수협은행`, Bank: "수협은행"},
			{Pattern: `\[?우체국\]?`, Bank: "우체국"},
			{Pattern: `\[?새마을금고\]?|\[?새마을\]?|\[?MG\]?`, Bank: "새마을금고"},
			{Pattern: `\[?신협\]?`, Bank: "신협"},
			{Pattern: `\[?카카오페이\]?`, Bank: "카카오페이"},
			{Pattern: `\[?토스\]?|\[?toss\]?`, Bank: "토스", IgnoreCase: true},
			{Pattern: `\[?네이버페이\]?`, Bank: "네이버페이"},
			{Pattern: `\[?페이코\]?|\[?PAYCO\]?`, Bank: "페이코", IgnoreCase: true},
		},
	}
}
