package mapping

import "github.com/leapstack-labs/fieldmap/pkg/core"

// builtinKeywords is the token dictionary for the keyword fallback stage.
// Scanning is greedy longest-first, so multi-character phrases shadow their
// fragments ("签单保费" wins over "保费", which wins over "费").
func builtinKeywords() []KeywordEntry {
	k := func(kw, token string) KeywordEntry { return KeywordEntry{Keyword: kw, Token: token} }
	return []KeywordEntry{
		// Prefix markers come first so they lead the assembled name.
		k("是否", "is"),

		// Identifiers
		k("保单号", "policy_number"),
		k("批单号", "endorsement_number"),
		k("单号", "number"),
		k("编号", "code"),

		// Premium
		k("签单保费", "written_premium"),
		k("商业险保费", "commercial_premium"),
		k("交强险保费", "compulsory_premium"),
		k("保费", "premium"),

		// Claims
		k("赔款", "claim"),
		k("案均", "average"),
		k("总", "total"),
		k("已决", "paid"),
		k("未决", "outstanding"),
		k("出险", "claim"),
		k("索赔", "claim"),

		// Fees
		k("手续费", "commission"),
		k("佣金", "commission"),
		k("费用", "fee"),
		k("管理费", "admin_fee"),

		// Ratios
		k("费用率", "expense_ratio"),
		k("赔付率", "loss_ratio"),
		k("成本率", "cost_ratio"),
		k("综合", "combined"),
		k("变动", "variable"),
		k("率", "ratio"),
		k("比率", "ratio"),
		k("比例", "ratio"),

		// Coefficients
		k("NCD系数", "ncd_factor"),
		k("系数", "factor"),
		k("折扣", "discount"),
		k("优惠", "discount"),

		// Organization
		k("三级机构", "level_3_org"),
		k("四级机构", "level_4_org"),
		k("五级机构", "level_5_org"),
		k("机构", "organization"),
		k("支公司", "branch"),
		k("分公司", "division"),
		k("营业部", "sales_office"),
		k("中心", "center"),
		k("业务员", "agent"),
		k("代理人", "agent"),
		k("代理", "agent"),
		k("经纪人", "broker"),
		k("经纪", "broker"),
		k("渠道", "channel"),
		k("销售", "sales"),
		k("终端", "terminal"),
		k("来源", "source"),

		// Partner
		k("4S集团", "dealer_group"),
		k("4S店", "dealer"),
		k("集团", "group"),
		k("合作伙伴", "partner"),

		// Vehicle
		k("车牌", "license_plate"),
		k("车架号", "vin"),
		k("发动机号", "engine_number"),
		k("车型", "vehicle_model"),
		k("厂牌", "make"),
		k("型号", "model"),
		k("品牌", "brand"),
		k("新旧车", "vehicle_age_category"),
		k("车龄", "vehicle_age"),
		k("座位数", "seat_count"),
		k("吨位", "tonnage"),
		k("排量", "displacement"),
		k("功率", "power"),
		k("整备质量", "curb_weight"),
		k("购置价", "purchase_price"),
		k("新车", "new_vehicle"),
		k("车辆", "vehicle"),
		k("车", "vehicle"),

		// Product
		k("险种", "coverage_type"),
		k("险别", "coverage"),
		k("险类", "insurance_class"),
		k("商业险", "commercial"),
		k("交强险", "compulsory"),
		k("产品", "product"),
		k("保额", "coverage_amount"),
		k("保险金额", "insured_amount"),
		k("金额", "amount"),
		k("限额", "limit"),

		// Customer
		k("投保人", "policyholder"),
		k("被保险人", "insured"),
		k("客户", "customer"),
		k("证件号", "id_number"),
		k("证件", "id"),
		k("电话", "phone"),
		k("地址", "address"),

		// Time
		k("保险起期", "policy_start_date"),
		k("保险止期", "policy_end_date"),
		k("起期", "start_date"),
		k("止期", "end_date"),
		k("生效日期", "effective_date"),
		k("到期日期", "expiration_date"),
		k("确认时间", "confirmation_time"),
		k("投保时间", "application_time"),
		k("签单时间", "issuance_time"),
		k("批改时间", "endorsement_time"),
		k("退保时间", "cancellation_time"),
		k("报案时间", "report_time"),
		k("刷新时间", "refresh_time"),
		k("时间", "time"),
		k("日期", "date"),
		k("投保", "application"),
		k("签单", "issuance"),
		k("批改", "endorsement"),
		k("退保", "cancellation"),
		k("报案", "report"),
		k("刷新", "refresh"),
		k("确认", "confirmation"),

		// Boolean
		k("续保", "renewal"),
		k("转保", "conversion"),
		k("新能源", "new_energy"),
		k("过户", "transferred"),
		k("网约车", "ride_hailing"),
		k("营业", "commercial"),
		k("标识", "flag"),
		k("标志", "flag"),

		// Status
		k("状态", "status"),
		k("保单", "policy"),
		k("业务", "business"),
		k("承保", "underwriting"),
		k("理赔", "claim"),

		// General
		k("评分", "score"),
		k("等级", "level"),
		k("风险", "risk"),
		k("类型", "type"),
		k("种类", "category"),
		k("名称", "name"),
		k("次数", "count"),
		k("频度", "frequency"),
		k("数量", "quantity"),
		k("笔数", "count"),
	}
}

// builtinGroupVocab associates each business group with the English terms a
// canonical name in that group is expected to contain. The quality
// validator awards group-consistency credit when at least one term appears;
// "general" carries no vocabulary and is always exempt.
func builtinGroupVocab() map[core.Group][]string {
	return map[core.Group][]string{
		core.GroupTime: {
			"time", "date", "datetime", "start", "end", "confirm",
			"confirmation", "refresh", "issuance", "effective", "expiration",
		},
		core.GroupOrganization: {
			"organization", "org", "branch", "division", "center", "company",
			"department", "agent", "broker", "channel", "sales", "office",
			"terminal", "source",
		},
		core.GroupFinance: {
			"premium", "fee", "amount", "cost", "price", "commission",
			"discount", "claim", "claims", "ratio", "rate", "factor",
			"ncd", "tax", "revenue",
		},
		core.GroupProduct: {
			"insurance", "coverage", "product", "limit", "insured_amount",
			"commercial", "compulsory", "class",
		},
		core.GroupVehicle: {
			"vehicle", "car", "license_plate", "plate", "vin", "engine",
			"model", "make", "brand", "seat", "seats", "tonnage",
			"displacement", "weight", "power", "purchase",
		},
		core.GroupFlag: {
			"is", "has", "flag", "indicator", "renewal", "conversion",
		},
		core.GroupCustomer: {
			"customer", "client", "policyholder", "insured", "applicant",
			"owner", "name", "id", "id_number", "phone", "address", "age",
			"gender",
		},
		core.GroupPolicy: {
			"policy", "endorsement", "application", "number",
		},
		core.GroupPartner: {
			"partner", "dealer", "group",
		},
		// general: intentionally absent; any term passes.
	}
}

// builtinExpected maps source-language fragments to the English term the
// validator expects to see in the canonical name. Used for the semantic
// accuracy dimension, independently of the resolver's keyword dictionary.
func builtinExpected() []KeywordEntry {
	k := func(kw, token string) KeywordEntry { return KeywordEntry{Keyword: kw, Token: token} }
	return []KeywordEntry{
		k("时间", "time"),
		k("日期", "date"),
		k("保费", "premium"),
		k("费用", "fee"),
		k("机构", "organization"),
		k("支公司", "branch"),
		k("险种", "coverage_type"),
		k("车牌", "license_plate"),
		k("客户", "customer"),
		k("保单", "policy"),
		k("业务员", "agent"),
		k("是否", "is"),
		k("标识", "flag"),
		k("金额", "amount"),
		k("折扣", "discount"),
		k("系数", "factor"),
		k("确认", "confirmation"),
		k("被保险人", "insured"),
		k("投保人", "policyholder"),
		k("证件号", "id_number"),
		k("车型", "vehicle_model"),
		k("车架号", "vin"),
		k("发动机", "engine"),
		k("签单", "issuance"),
		k("批改", "endorsement"),
		k("保额", "coverage_amount"),
		k("手续费", "commission"),
		k("比例", "ratio"),
		k("座位", "seat"),
		k("吨位", "tonnage"),
		k("排量", "displacement"),
		k("赔款", "claim"),
		k("等级", "level"),
		k("评分", "score"),
	}
}

// builtinBoolVocab lists the normalized cell values recognized as boolean.
func builtinBoolVocab() []string {
	return []string{"是", "否", "y", "n", "yes", "no", "true", "false", "0", "1", "t", "f"}
}
