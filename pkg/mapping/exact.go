package mapping

import "github.com/leapstack-labs/fieldmap/pkg/core"

// builtinExact is the exact-match table for common auto-insurance fields.
// Naming follows NAIC-style insurance terminology in snake_case; amounts
// carry no currency suffix, ratios use _rate/_ratio, coefficients use
// _factor, booleans use is_/_flag.
func builtinExact() map[string]core.MappingEntry {
	e := func(name string, g core.Group, d core.DType) core.MappingEntry {
		return core.MappingEntry{EnName: name, Group: g, DType: d}
	}
	return map[string]core.MappingEntry{
		// Policy identifiers
		"保单号":  e("policy_number", core.GroupPolicy, core.DTypeString),
		"保险单号": e("policy_number", core.GroupPolicy, core.DTypeString),
		"批单号":  e("endorsement_number", core.GroupPolicy, core.DTypeString),
		"投保单号": e("application_number", core.GroupPolicy, core.DTypeString),

		// Premium
		"保费":      e("premium", core.GroupFinance, core.DTypeNumber),
		"签单保费":    e("written_premium", core.GroupFinance, core.DTypeNumber),
		"商业险保费":   e("commercial_premium", core.GroupFinance, core.DTypeNumber),
		"交强险保费":   e("compulsory_premium", core.GroupFinance, core.DTypeNumber),
		"批改保费":    e("endorsement_premium", core.GroupFinance, core.DTypeNumber),
		"退保保费":    e("refund_premium", core.GroupFinance, core.DTypeNumber),
		"实收保费":    e("earned_premium", core.GroupFinance, core.DTypeNumber),
		"NCD保费":   e("ncd_premium", core.GroupFinance, core.DTypeNumber),
		"NCD基准保费": e("ncd_base_premium", core.GroupFinance, core.DTypeNumber),

		// Claims
		"赔款":   e("claim_amount", core.GroupFinance, core.DTypeNumber),
		"总赔款":  e("total_claims", core.GroupFinance, core.DTypeNumber),
		"案均赔款": e("average_claim", core.GroupFinance, core.DTypeNumber),
		"已决赔款": e("paid_claims", core.GroupFinance, core.DTypeNumber),
		"未决赔款": e("outstanding_claims", core.GroupFinance, core.DTypeNumber),
		"案件数":  e("claim_count", core.GroupFinance, core.DTypeNumber),
		"出险次数": e("claim_frequency", core.GroupFinance, core.DTypeNumber),
		"出险频度": e("claim_frequency", core.GroupFinance, core.DTypeNumber),

		// Fees and costs
		"手续费":  e("commission", core.GroupFinance, core.DTypeNumber),
		"佣金":   e("commission", core.GroupFinance, core.DTypeNumber),
		"费用":   e("fee", core.GroupFinance, core.DTypeNumber),
		"总费用":  e("total_fee", core.GroupFinance, core.DTypeNumber),
		"费用金额": e("fee_amount", core.GroupFinance, core.DTypeNumber),
		"管理费":  e("admin_fee", core.GroupFinance, core.DTypeNumber),

		// Ratios and rates
		"费用率":   e("expense_ratio", core.GroupFinance, core.DTypeNumber),
		"赔付率":   e("loss_ratio", core.GroupFinance, core.DTypeNumber),
		"综合成本率": e("combined_ratio", core.GroupFinance, core.DTypeNumber),
		"变动成本率": e("variable_cost_ratio", core.GroupFinance, core.DTypeNumber),
		"佣金率":   e("commission_rate", core.GroupFinance, core.DTypeNumber),
		"折扣率":   e("discount_rate", core.GroupFinance, core.DTypeNumber),
		"费率":    e("rate", core.GroupFinance, core.DTypeNumber),

		// Discounts and coefficients
		"NCD系数": e("ncd_factor", core.GroupFinance, core.DTypeNumber),
		"自主系数":  e("autonomous_factor", core.GroupFinance, core.DTypeNumber),
		"渠道系数":  e("channel_factor", core.GroupFinance, core.DTypeNumber),
		"折扣":    e("discount", core.GroupFinance, core.DTypeNumber),
		"优惠金额":  e("discount_amount", core.GroupFinance, core.DTypeNumber),

		// Organization
		"机构":    e("organization", core.GroupOrganization, core.DTypeString),
		"三级机构":  e("level_3_organization", core.GroupOrganization, core.DTypeString),
		"四级机构":  e("level_4_organization", core.GroupOrganization, core.DTypeString),
		"五级机构":  e("level_5_organization", core.GroupOrganization, core.DTypeString),
		"支公司":   e("branch", core.GroupOrganization, core.DTypeString),
		"分公司":   e("division", core.GroupOrganization, core.DTypeString),
		"中心支公司": e("central_branch", core.GroupOrganization, core.DTypeString),
		"营业部":   e("sales_office", core.GroupOrganization, core.DTypeString),

		// Agent and channel
		"业务员":  e("agent", core.GroupOrganization, core.DTypeString),
		"代理人":  e("agent", core.GroupOrganization, core.DTypeString),
		"经纪人":  e("broker", core.GroupOrganization, core.DTypeString),
		"渠道":   e("channel", core.GroupOrganization, core.DTypeString),
		"销售渠道": e("sales_channel", core.GroupOrganization, core.DTypeString),
		"终端来源": e("terminal_source", core.GroupOrganization, core.DTypeString),

		// Partner
		"4S集团": e("dealer_group", core.GroupPartner, core.DTypeString),
		"合作伙伴": e("partner", core.GroupPartner, core.DTypeString),

		// Vehicle identity
		"车牌号":  e("license_plate", core.GroupVehicle, core.DTypeString),
		"车牌号码": e("license_plate", core.GroupVehicle, core.DTypeString),
		"车架号":  e("vin", core.GroupVehicle, core.DTypeString),
		"发动机号": e("engine_number", core.GroupVehicle, core.DTypeString),
		"车型":   e("vehicle_model", core.GroupVehicle, core.DTypeString),
		"厂牌型号": e("make_model", core.GroupVehicle, core.DTypeString),
		"品牌":   e("brand", core.GroupVehicle, core.DTypeString),
		"车辆种类": e("vehicle_type", core.GroupVehicle, core.DTypeString),
		"使用性质": e("use_nature", core.GroupVehicle, core.DTypeString),

		// Vehicle attributes
		"新旧车":   e("vehicle_age_category", core.GroupVehicle, core.DTypeString),
		"车龄":    e("vehicle_age", core.GroupVehicle, core.DTypeNumber),
		"座位数":   e("seat_count", core.GroupVehicle, core.DTypeNumber),
		"吨位":    e("tonnage", core.GroupVehicle, core.DTypeNumber),
		"排量":    e("displacement", core.GroupVehicle, core.DTypeNumber),
		"功率":    e("power", core.GroupVehicle, core.DTypeNumber),
		"整备质量":  e("curb_weight", core.GroupVehicle, core.DTypeNumber),
		"购置价":   e("purchase_price", core.GroupVehicle, core.DTypeNumber),
		"新车购置价": e("new_vehicle_price", core.GroupVehicle, core.DTypeNumber),

		// Product and coverage
		"险种":   e("coverage_type", core.GroupProduct, core.DTypeString),
		"险别":   e("coverage", core.GroupProduct, core.DTypeString),
		"险类":   e("insurance_class", core.GroupProduct, core.DTypeString),
		"产品":   e("product", core.GroupProduct, core.DTypeString),
		"产品名称": e("product_name", core.GroupProduct, core.DTypeString),
		"保额":   e("coverage_amount", core.GroupProduct, core.DTypeNumber),
		"保险金额": e("insured_amount", core.GroupProduct, core.DTypeNumber),
		"限额":   e("limit", core.GroupProduct, core.DTypeNumber),

		// Customer
		"投保人":  e("policyholder", core.GroupCustomer, core.DTypeString),
		"被保险人": e("insured", core.GroupCustomer, core.DTypeString),
		"客户名称": e("customer_name", core.GroupCustomer, core.DTypeString),
		"客户类型": e("customer_type", core.GroupCustomer, core.DTypeString),
		"证件号码": e("id_number", core.GroupCustomer, core.DTypeString),
		"证件类型": e("id_type", core.GroupCustomer, core.DTypeString),
		"联系电话": e("phone", core.GroupCustomer, core.DTypeString),
		"地址":   e("address", core.GroupCustomer, core.DTypeString),

		// Time
		"保险起期":   e("policy_start_date", core.GroupTime, core.DTypeDatetime),
		"保险止期":   e("policy_end_date", core.GroupTime, core.DTypeDatetime),
		"生效日期":   e("effective_date", core.GroupTime, core.DTypeDatetime),
		"到期日期":   e("expiration_date", core.GroupTime, core.DTypeDatetime),
		"确认时间":   e("confirmation_time", core.GroupTime, core.DTypeDatetime),
		"投保确认时间": e("application_confirmation_time", core.GroupTime, core.DTypeDatetime),
		"签单时间":   e("issuance_time", core.GroupTime, core.DTypeDatetime),
		"批改时间":   e("endorsement_time", core.GroupTime, core.DTypeDatetime),
		"退保时间":   e("cancellation_time", core.GroupTime, core.DTypeDatetime),
		"出险时间":   e("claim_time", core.GroupTime, core.DTypeDatetime),
		"报案时间":   e("report_time", core.GroupTime, core.DTypeDatetime),
		"刷新时间":   e("refresh_time", core.GroupTime, core.DTypeDatetime),

		// Flags
		"是否续保":  e("is_renewal", core.GroupFlag, core.DTypeBoolean),
		"是否新能源": e("is_new_energy", core.GroupFlag, core.DTypeBoolean),
		"是否过户车": e("is_transferred", core.GroupFlag, core.DTypeBoolean),
		"是否网约车": e("is_ride_hailing", core.GroupFlag, core.DTypeBoolean),
		"是否营业":  e("is_commercial", core.GroupFlag, core.DTypeBoolean),
		"续保标识":  e("renewal_flag", core.GroupFlag, core.DTypeBoolean),
		"转保标识":  e("conversion_flag", core.GroupFlag, core.DTypeBoolean),

		// Status
		"保单状态": e("policy_status", core.GroupGeneral, core.DTypeString),
		"业务状态": e("business_status", core.GroupGeneral, core.DTypeString),
		"承保状态": e("underwriting_status", core.GroupGeneral, core.DTypeString),
		"理赔状态": e("claim_status", core.GroupGeneral, core.DTypeString),

		// Score and rating
		"评分":   e("score", core.GroupGeneral, core.DTypeNumber),
		"风险评分": e("risk_score", core.GroupGeneral, core.DTypeNumber),
		"等级":   e("level", core.GroupGeneral, core.DTypeString),
		"风险等级": e("risk_level", core.GroupGeneral, core.DTypeString),
	}
}
