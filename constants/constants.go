package constants

// DMS API paths. The host comes from config.
const REQUEST_SERVICE_PATH = "/api/v1/run/request-service"
const DEPLOY_PATH = "/api/v1/run/deploy"
const PEERS_PATH = "/api/v1/peers/dht/dump"
const ONBOARDING_PATH = "/api/v1/onboarding"

// ScriptAddress is the payment contract address on the Cardano preprod testnet.
const ScriptAddress = "addr_test1wplx9dwzmn986k48kwmqn75yjlhlwcy094euq8c7s2ws8xc5k5uu6"

// mNTX token attached to every contract payment.
const MntxPolicyId = "8cafc9b387c9f6519cacdce48a8448c062670c810d8da4b232e56313"
const MntxAssetName = "6d4e5458"
const MntxAmount = 10

// Base payment in lovelace, plus PriceScale lovelace per estimated price unit.
const BaseFeeLovelace = 2_000_000
const PriceScaleLovelace = 10_000_000

// Datum parameters. DeadlineSlots is added to the last block slot;
// DatumTimeout is carried in the datum but not read by the contract.
const DeadlineSlots = 86400
const DatumTimeout = 10
const DatumNtx = 1

// MetadataLabel is the transaction metadata label used for usage tracking.
const MetadataLabel = 674

// websocket actions
const ActionSendStatus = "send-status"
const ActionTerminateJob = "terminate-job"
const ActionJobCompleted = "job-completed"

// funding confirmation message fields
const TxStatusSuccess = "success"
const TxTypeFund = "fund"
